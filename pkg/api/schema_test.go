package api

import "testing"

func TestValidateCommandShape(t *testing.T) {
	valid := [][]byte{
		[]byte(`{"action":"MOVE","token":"hero_1","payload":{"dx":1,"dy":0}}`),
		[]byte(`{"action":"WAIT"}`),
		[]byte(`{"action":"PICKUP","payload":{"itemId":"sword_1"}}`),
	}
	for _, raw := range valid {
		if err := ValidateCommandShape(raw); err != nil {
			t.Errorf("valid frame rejected: %s: %v", raw, err)
		}
	}

	invalid := [][]byte{
		[]byte(`{"token":"hero_1"}`),                 // action missing
		[]byte(`{"action":"move"}`),                  // lowercase action
		[]byte(`{"action":"MOVE","payload":"east"}`), // payload not an object
		[]byte(`{"action":"MOVE","extra":true}`),     // unknown field
		[]byte(`{"action":`),                         // not json
	}
	for _, raw := range invalid {
		if err := ValidateCommandShape(raw); err == nil {
			t.Errorf("invalid frame accepted: %s", raw)
		}
	}
}

func TestPayloadValidators(t *testing.T) {
	if err := (DirectionPayload{Dx: 1}).Validate(); err != nil {
		t.Errorf("unit step rejected: %v", err)
	}
	if err := (DirectionPayload{}).Validate(); err == nil {
		t.Error("zero vector accepted")
	}
	if err := (DirectionPayload{Dx: 2}).Validate(); err == nil {
		t.Error("oversized step accepted")
	}
	if err := (EntityPayload{}).Validate(); err == nil {
		t.Error("empty targetId accepted")
	}
	if err := (ItemPayload{}).Validate(); err == nil {
		t.Error("empty itemId accepted")
	}
}
