package mysql

import (
	"Lee_Village/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// AutoMigrate 自动建表（开发阶段 OK）；唯一索引在这里落地，
// (user,village)/(post,user)/(event,user) 的去重靠库约束而不是应用层检查
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Village{},
		&model.Membership{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Event{},
		&model.EventRsvp{},
	)
}
