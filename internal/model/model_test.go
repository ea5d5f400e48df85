package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFlexIDDecodesBothRepresentations(t *testing.T) {
	cases := []struct {
		in   string
		want FlexID
	}{
		{`5`, 5},
		{`"5"`, 5},
		{`0`, 0},
		{`"12345678901"`, 12345678901},
		{`null`, 0},
		{`""`, 0},
	}
	for _, tc := range cases {
		var got FlexID
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Errorf("unmarshal %s: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("unmarshal %s = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFlexIDRejectsNonNumeric(t *testing.T) {
	var got FlexID
	if err := json.Unmarshal([]byte(`"abc"`), &got); err == nil {
		t.Error("non-numeric string should not decode")
	}
}

func TestFlexIDNumericEquality(t *testing.T) {
	type doc struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
	}
	var d doc
	if err := json.Unmarshal([]byte(`{"a":"7","b":7}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.A != d.B {
		t.Errorf("string and number forms of the same id must compare equal: %d != %d", d.A, d.B)
	}
}

func TestCreateBatchValidateBounds(t *testing.T) {
	base := func(n int) *CreateBatchRequest {
		return &CreateBatchRequest{
			Name:          "cats",
			Category:      "animals",
			TargetSubject: "a cute cat",
			TotalImages:   n,
		}
	}
	cases := []struct {
		total int
		ok    bool
	}{
		{0, false},
		{1, true},
		{10000, true},
		{10001, false},
	}
	for _, tc := range cases {
		err := base(tc.total).Validate()
		if tc.ok && err != nil {
			t.Errorf("total=%d: unexpected error %v", tc.total, err)
		}
		if !tc.ok && !errors.Is(err, ErrQuantityOutOfRange) {
			t.Errorf("total=%d: err = %v, want ErrQuantityOutOfRange", tc.total, err)
		}
	}
}

func TestCreateBatchValidateRequiredFields(t *testing.T) {
	missingCategory := &CreateBatchRequest{TargetSubject: "a cat", TotalImages: 10}
	if !errors.Is(missingCategory.Validate(), ErrCategoryRequired) {
		t.Error("missing category should be rejected")
	}

	missingSubject := &CreateBatchRequest{Category: "animals", TotalImages: 10}
	if !errors.Is(missingSubject.Validate(), ErrSubjectRequired) {
		t.Error("missing subject should be rejected")
	}
}

func TestGenerateValidate(t *testing.T) {
	ok := &GenerateRequest{Prompt: "a cat", Category: "animals"}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	noPrompt := &GenerateRequest{Category: "animals"}
	if !errors.Is(noPrompt.Validate(), ErrPromptRequired) {
		t.Error("empty prompt should be rejected")
	}
}

func TestDisplayModel(t *testing.T) {
	if got := DisplayModel("sd15"); got != "DreamShaper 8" {
		t.Errorf("DisplayModel(sd15) = %q", got)
	}
	// unknown ids fall back to the raw id
	if got := DisplayModel("custom-x"); got != "custom-x" {
		t.Errorf("DisplayModel(custom-x) = %q", got)
	}
}
