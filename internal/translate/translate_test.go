package translate

import "testing"

func TestTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"kip", "chicken"},
		{"Kip", "chicken"},
		{"  kip  ", "chicken"},
		{"ui", "onion"},
		{"uien", "onions"},
		{"paprika", "bell pepper"},
		{"sperziebonen", "sperziebonen"}, // untranslated falls back to normalized input
		{"Sperziebonen", "sperziebonen"},
	}
	for _, tt := range tests {
		if got := Term(tt.in); got != tt.want {
			t.Errorf("Term(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProducts(t *testing.T) {
	got := Products([]string{"tomaat", "paprika", "zalm", ""})
	want := "tomato, bell pepper, zalm"
	if got != want {
		t.Errorf("Products = %q, want %q", got, want)
	}
}

func TestProductsEmpty(t *testing.T) {
	if got := Products(nil); got != "" {
		t.Errorf("Products(nil) = %q, want empty", got)
	}
}
