package model

import (
	"errors"
	"testing"
	"time"
)

func TestBirthInputValidate(t *testing.T) {
	cases := []struct {
		name  string
		birth BirthInput
		ok    bool
	}{
		{"valid", BirthInput{Date: "1990-06-15", Time: "14:30", Lat: 40.71, Lon: -74.0}, true},
		{"valid without time", BirthInput{Date: "1990-06-15", Lat: 0, Lon: 0}, true},
		{"missing date", BirthInput{Lat: 0, Lon: 0}, false},
		{"malformed date", BirthInput{Date: "15/06/1990"}, false},
		{"malformed time", BirthInput{Date: "1990-06-15", Time: "2pm"}, false},
		{"latitude too high", BirthInput{Date: "1990-06-15", Lat: 91}, false},
		{"latitude too low", BirthInput{Date: "1990-06-15", Lat: -91}, false},
		{"longitude too high", BirthInput{Date: "1990-06-15", Lon: 181}, false},
		{"longitude too low", BirthInput{Date: "1990-06-15", Lon: -181}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.birth.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("error %v is not ErrInvalidInput", err)
				}
			}
		})
	}
}

func TestBirthInputTimestampDefaultsToNoon(t *testing.T) {
	b := BirthInput{Date: "1990-06-15"}
	ts, err := b.Timestamp()
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", ts, want)
	}
}

func TestBirthInputTimestampParsesClock(t *testing.T) {
	b := BirthInput{Date: "1990-06-15", Time: "14:30"}
	ts, err := b.Timestamp()
	if err != nil {
		t.Fatal(err)
	}
	if ts.Hour() != 14 || ts.Minute() != 30 {
		t.Errorf("Timestamp = %v, want 14:30", ts)
	}
}
