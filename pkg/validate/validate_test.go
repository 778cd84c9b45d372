package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/vastra/pkg/validate"
)

// The brand/category admin form shape.
type taxonomyForm struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"nullable,max=1000"`
	Status      string `json:"status"      validate:"nullable,integer"`
}

func TestValidForm(t *testing.T) {
	errs := validate.Struct(taxonomyForm{
		Name:        "Sarees",
		Description: "Handloom and festive sarees",
		Status:      "1",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredName(t *testing.T) {
	errs := validate.Struct(taxonomyForm{})
	if errs["name"] != "The name field is required." {
		t.Errorf("unexpected name error: %q", errs["name"])
	}
	if _, ok := errs["description"]; ok {
		t.Error("empty nullable description should not error")
	}
}

func TestMinLengthAfterRequired(t *testing.T) {
	errs := validate.Struct(taxonomyForm{Name: "S"})
	if errs["name"] != "The name must be at least 2 characters." {
		t.Errorf("unexpected error: %q", errs["name"])
	}
}

func TestNullableIntegerStatus(t *testing.T) {
	if errs := validate.Struct(taxonomyForm{Name: "Kurtis", Status: ""}); validate.HasErrors(errs) {
		t.Errorf("empty status should pass: %v", errs)
	}
	errs := validate.Struct(taxonomyForm{Name: "Kurtis", Status: "active"})
	if _, ok := errs["status"]; !ok {
		t.Error("non-integer status should fail")
	}
}

func TestNumericMinMax(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,min=1,max=100000"`
	}
	if errs := validate.Struct(in{Price: 0.5}); !validate.HasErrors(errs) {
		t.Error("expected price below minimum to fail")
	}
	if errs := validate.Struct(in{Price: 1499}); validate.HasErrors(errs) {
		t.Errorf("expected price to pass: %v", errs)
	}
}

func TestInRuleKeepsParamCommas(t *testing.T) {
	type in struct {
		Sort string `json:"sort" validate:"required,in=latest,price_asc,price_desc,max=20"`
	}
	if errs := validate.Struct(in{Sort: "newest"}); errs["sort"] != "The selected sort is invalid." {
		t.Errorf("unexpected error: %q", errs["sort"])
	}
	if errs := validate.Struct(in{Sort: "price_desc"}); validate.HasErrors(errs) {
		t.Errorf("expected listed value to pass: %v", errs)
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Stock int `json:"stock" validate:"required,between=1,500"`
	}
	if errs := validate.Struct(in{Stock: 900}); !validate.HasErrors(errs) {
		t.Error("expected stock above range to fail")
	}
	if errs := validate.Struct(in{Stock: 12}); validate.HasErrors(errs) {
		t.Errorf("expected stock in range to pass: %v", errs)
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Site: "https://vastra.dev"}); validate.HasErrors(errs) {
		t.Errorf("expected valid URL to pass: %v", errs)
	}
	if errs := validate.Struct(in{Site: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Slug string `json:"slug" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Slug: "w-for-woman_2"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Slug: "w for woman!"}); !validate.HasErrors(errs) {
		t.Error("expected spaces and punctuation to fail")
	}
}

func TestRegexRule(t *testing.T) {
	type in struct {
		Hex string `json:"hex" validate:"required,regex=^[0-9a-f]{24}$"`
	}
	if errs := validate.Struct(in{Hex: "64b2f0c8a1d2e3f405060708"}); validate.HasErrors(errs) {
		t.Errorf("expected object id hex to pass: %v", errs)
	}
	if errs := validate.Struct(in{Hex: "nope"}); errs["hex"] != "The hex format is invalid." {
		t.Errorf("unexpected error: %q", errs["hex"])
	}
}
