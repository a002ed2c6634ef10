package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList 以 JSON 文本落库的字符串数组（constitution / images / tags）
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// 积分规则可识别的动作
const (
	ActionPost         = "post"
	ActionComment      = "comment"
	ActionRsvp         = "rsvp"
	ActionLikeReceived = "like_received"
)

// PointRules 村庄配置的动作->积分奖励表。用 map 保证未知键原样round-trip。
type PointRules map[string]int

// Reward 返回某动作的奖励值，未配置为 0
func (p PointRules) Reward(action string) int {
	if p == nil {
		return 0
	}
	return p[action]
}

func (p PointRules) Value() (driver.Value, error) {
	if p == nil {
		p = PointRules{}
	}
	b, err := json.Marshal(p)
	return string(b), err
}

func (p *PointRules) Scan(src any) error {
	if src == nil {
		*p = PointRules{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PointRules", src)
	}
	if len(data) == 0 {
		*p = PointRules{}
		return nil
	}
	return json.Unmarshal(data, p)
}
