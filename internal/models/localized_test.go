package models

import (
	"encoding/json"
	"testing"
)

func TestEntityRefUnmarshal(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{"bare string", `"abc-123"`, "abc-123", false},
		{"object form", `{"id":"abc-123"}`, "abc-123", false},
		{"object with extra fields", `{"id":"abc-123","name":{"en":"Drills"}}`, "abc-123", false},
		{"empty string", `""`, "", false},
		{"number", `42`, "", true},
		{"array", `["abc"]`, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ref EntityRef
			err := json.Unmarshal([]byte(tc.payload), &ref)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, got ref=%q", ref.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if ref.String() != tc.want {
				t.Fatalf("want=%q got=%q", tc.want, ref.String())
			}
		})
	}
}

func TestEntityRefUnmarshalInSlice(t *testing.T) {
	// Mixed forms in one payload, the way a frontend actually sends them.
	var input CreateCategoryInput
	payload := `{"name":{"ka":"ბურღები","en":"Drills"},"slug":"drills","brandIds":["b1",{"id":"b2"}]}`
	if err := json.Unmarshal([]byte(payload), &input); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	ids := RefIDs(input.BrandIDs)
	if len(ids) != 2 || ids[0] != "b1" || ids[1] != "b2" {
		t.Fatalf("want=[b1 b2] got=%v", ids)
	}
}

func TestRefIDsDedupe(t *testing.T) {
	refs := []EntityRef{{ID: "a"}, {ID: ""}, {ID: "b"}, {ID: "a"}}
	got := RefIDs(refs)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("want=[a b] got=%v", got)
	}
}

func TestLocalizedTextValidateInto(t *testing.T) {
	errs := map[string]string{}
	LocalizedText{Ka: "ბურღები", En: "Drills"}.ValidateInto("name", errs)
	if len(errs) != 0 {
		t.Fatalf("complete text should validate: %v", errs)
	}

	errs = map[string]string{}
	LocalizedText{En: "Drills"}.ValidateInto("name", errs)
	if _, ok := errs["name.ka"]; !ok {
		t.Fatalf("missing ka should be flagged: %v", errs)
	}
	if _, ok := errs["name.en"]; ok {
		t.Fatalf("en is present, should not be flagged: %v", errs)
	}
}

func TestValidSlug(t *testing.T) {
	valid := []string{"drills", "power-tools", "power_tools", "gen2-drills", "a"}
	for _, s := range valid {
		if !ValidSlug(s) {
			t.Fatalf("%q should be a valid slug", s)
		}
	}
	invalid := []string{"", "Drills", "power tools", "-drills", "drills-", "დრელები", "a--b"}
	for _, s := range invalid {
		if ValidSlug(s) {
			t.Fatalf("%q should be rejected", s)
		}
	}
}

func TestCreateBrandInputValidate(t *testing.T) {
	in := CreateBrandInput{
		Name: LocalizedText{Ka: "ბოში", En: "Bosch"},
		Slug: "bosch",
	}
	if errs := in.Validate(); len(errs) != 0 {
		t.Fatalf("valid input rejected: %v", errs)
	}

	in = CreateBrandInput{Slug: "Not A Slug"}
	errs := in.Validate()
	for _, field := range []string{"name.ka", "name.en", "slug"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s: %v", field, errs)
		}
	}
}

func TestChildCategoryAssignedTo(t *testing.T) {
	categoryID := "c1"
	c := ChildCategory{BrandIDs: []string{"b1", "b2"}, CategoryID: &categoryID}

	if !c.AssignedTo("b1", "c1") {
		t.Fatal("b1/c1 should be assigned")
	}
	if c.AssignedTo("b3", "c1") {
		t.Fatal("brand not in set, should not be assigned")
	}
	if c.AssignedTo("b1", "c2") {
		t.Fatal("different parent category, should not be assigned")
	}

	orphan := ChildCategory{BrandIDs: []string{"b1"}}
	if orphan.AssignedTo("b1", "c1") {
		t.Fatal("nil categoryId should never match")
	}
}
