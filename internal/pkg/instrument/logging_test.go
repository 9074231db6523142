package instrument

import (
	"reflect"
	"testing"
)

func TestMaskDataMasksSecretsRecursively(t *testing.T) {
	keys := MaskKeys(nil)

	in := map[string]any{
		"to":            "a@b.com",
		"client_secret": "super-secret",
		"nested": map[string]any{
			"code":          "auth-code",
			"redirect_uri":  "https://app.example.com/cb",
			"code_verifier": "verifier",
		},
		"tokens": []any{
			map[string]any{"access_token": "tok", "token_type": "Bearer"},
		},
	}

	got := MaskData(in, keys)

	want := map[string]any{
		"to":            "a@b.com",
		"client_secret": "***",
		"nested": map[string]any{
			"code":          "***",
			"redirect_uri":  "https://app.example.com/cb",
			"code_verifier": "***",
		},
		"tokens": []any{
			map[string]any{"access_token": "***", "token_type": "Bearer"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MaskData = %#v, want %#v", got, want)
	}
}

func TestMaskKeysMergesConfiguredFields(t *testing.T) {
	keys := MaskKeys([]string{"X-Internal-Token", " "})

	if _, ok := keys["x-internal-token"]; !ok {
		t.Fatal("configured field should be lowercased into the mask set")
	}
	if _, ok := keys["password"]; !ok {
		t.Fatal("built-in fields must always be present")
	}
	if _, ok := keys[""]; ok {
		t.Fatal("blank entries should be dropped")
	}
}
