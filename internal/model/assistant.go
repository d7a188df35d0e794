// Package model 包含了应用的数据模型定义。
package model

import "time"

// Assistant 代表一个可供用户选择的预配置助手人格。
// 该表由运营端维护，本服务只读。
type Assistant struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Prompt        string    `gorm:"type:text;not null" json:"-"`
	NameEN        string    `gorm:"column:name_en" json:"name_en"`
	NameRU        string    `gorm:"column:name_ru" json:"name_ru"`
	DescriptionEN string    `gorm:"column:description_en" json:"description_en"`
	DescriptionRU string    `gorm:"column:description_ru" json:"description_ru"`
	Category      string    `gorm:"index" json:"category"`
	IsActive      bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Assistant) TableName() string {
	return "assistants"
}

// LocalizedName 返回指定语言的展示名称，缺失时回退英文。
func (a *Assistant) LocalizedName(lang string) string {
	if lang == "ru" && a.NameRU != "" {
		return a.NameRU
	}
	return a.NameEN
}

// LocalizedDescription 返回指定语言的描述，缺失时回退英文。
func (a *Assistant) LocalizedDescription(lang string) string {
	if lang == "ru" && a.DescriptionRU != "" {
		return a.DescriptionRU
	}
	return a.DescriptionEN
}
