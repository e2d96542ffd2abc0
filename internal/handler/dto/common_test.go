package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/service"
)

func TestDateRoundTrip(t *testing.T) {
	var parsed struct {
		DueDate *Date `json:"due_date"`
	}
	if err := json.Unmarshal([]byte(`{"due_date":"2026-09-15"}`), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if parsed.DueDate == nil || !parsed.DueDate.Equal(want) {
		t.Fatalf("parsed = %v", parsed.DueDate)
	}

	out, err := json.Marshal(parsed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"due_date":"2026-09-15"}` {
		t.Errorf("marshaled = %s", out)
	}
}

func TestDateRejectsTimestamps(t *testing.T) {
	var parsed struct {
		DueDate *Date `json:"due_date"`
	}
	err := json.Unmarshal([]byte(`{"due_date":"2026-09-15T10:30:00Z"}`), &parsed)
	if err == nil {
		t.Fatal("expected date-only format to be enforced")
	}
}

func TestDateNull(t *testing.T) {
	var parsed struct {
		DueDate *Date `json:"due_date"`
	}
	if err := json.Unmarshal([]byte(`{"due_date":null}`), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.DueDate != nil {
		t.Errorf("parsed = %v", parsed.DueDate)
	}
	if parsed.DueDate.TimePtr() != nil {
		t.Error("nil date must yield nil time")
	}
}

func TestToPageResponse(t *testing.T) {
	page := service.Page[int]{
		Items:         []int{1, 2, 3},
		Page:          1,
		Size:          3,
		TotalElements: 7,
		TotalPages:    3,
	}

	resp := ToPageResponse(page, func(n int) string {
		if n == 2 {
			return "two"
		}
		return "other"
	})

	if len(resp.Items) != 3 || resp.Items[1] != "two" {
		t.Errorf("items = %v", resp.Items)
	}
	if resp.TotalElements != 7 || resp.TotalPages != 3 {
		t.Errorf("totals = %d/%d", resp.TotalElements, resp.TotalPages)
	}
}
