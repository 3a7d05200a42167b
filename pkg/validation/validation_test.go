package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string  `validate:"required,max=5"`
	Price    float64 `validate:"gte=0"`
	Time     *string `validate:"omitempty,hhmm"`
	Duration string  `validate:"omitempty,hhmmss"`
	Status   string  `validate:"omitempty,oneof=scheduled in_progress finished"`
	Date     string  `validate:"omitempty,datetime=2006-01-02"`
}

func TestStruct(t *testing.T) {
	valid := "17.41"

	tests := []struct {
		name    string
		data    sample
		wantMsg string
	}{
		{name: "valid", data: sample{Name: "Mini", Time: &valid, Duration: "01:30:00", Status: "finished", Date: "2026-10-20"}},
		{name: "missing name", data: sample{}, wantMsg: "Name is required"},
		{name: "long name", data: sample{Name: "Premium"}, wantMsg: "Name must be at most 5 characters"},
		{name: "negative price", data: sample{Name: "A", Price: -1}, wantMsg: "Price must be greater than or equal to 0"},
		{name: "bad time", data: sample{Name: "A", Time: strPtr("24:10")}, wantMsg: "Time must be a time of day HH:MM"},
		{name: "bad duration", data: sample{Name: "A", Duration: "1:70:00"}, wantMsg: "Duration must be a duration HH:MM:SS"},
		{name: "bad status", data: sample{Name: "A", Status: "cancelled"}, wantMsg: "Status must be one of: scheduled in_progress finished"},
		{name: "bad date", data: sample{Name: "A", Date: "20.10.2026"}, wantMsg: "Date must match layout 2006-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.data)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func strPtr(s string) *string { return &s }
