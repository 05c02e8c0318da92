package model

import "time"

// Employee is a person on the payroll. Department holds a department code
// and is not a foreign key.
type Employee struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FirstName  string    `json:"first_name" gorm:"size:50;not null"`
	LastName   string    `json:"last_name" gorm:"size:50;not null"`
	Email      string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"size:20"`
	Address    string    `json:"address" gorm:"size:255"`
	Position   string    `json:"position" gorm:"size:100"`
	Department string    `json:"department" gorm:"size:50;index"`
	HireDate   NullDate  `json:"hire_date"`
	CreatedAt  time.Time `json:"created_at"`
}
