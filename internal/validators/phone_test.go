package validators

import "testing"

func TestIsPhoneValid(t *testing.T) {
	valid := []string{
		"081234567890",
		"+6281234567890",
		"0812-3456-7890",
		"0812 3456 7890",
		"(021) 5550123",
	}
	for _, phone := range valid {
		if !IsPhoneValid(phone) {
			t.Errorf("IsPhoneValid(%q) = false, want true", phone)
		}
	}

	invalid := []string{
		"",
		"12345",              // terlalu pendek
		"08123456789012345",  // terlalu panjang
		"telepon saya",       // bukan angka
		"0812x3456",          // huruf di tengah
		"++6281234567890",    // plus ganda
	}
	for _, phone := range invalid {
		if IsPhoneValid(phone) {
			t.Errorf("IsPhoneValid(%q) = true, want false", phone)
		}
	}
}
