package model

import "time"

type Professor struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Materia   string    `json:"materia"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
