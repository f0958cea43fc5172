package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Sigma Profil 40x40", "sigma-profil-40x40"},
		{"Bağlantı Parçaları", "baglanti-parcalari"},
		{"Çelik Vida Seti", "celik-vida-seti"},
		{"Güç Kaynağı 24V", "guc-kaynagi-24v"},
		{"İşlenmiş Şaft", "islenmis-saft"},
		{"Ölçüm & Kontrol", "olcum-kontrol"},
		{"  spaced   out  ", "spaced-out"},
		{"--dashes--", "dashes"},
		{"Café Crème", "cafe-creme"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestForProduct(t *testing.T) {
	assert.Equal(t, "sigma-profil-40x40-cnc-1001", ForProduct("Sigma Profil 40x40", "CNC-1001"))
	assert.Equal(t, "step-motor-nema-17", ForProduct("Step Motor", " NEMA-17 "))
}

func TestForProductDisambiguatesSharedNames(t *testing.T) {
	a := ForProduct("Rulman 608ZZ", "RB-608-A")
	b := ForProduct("Rulman 608ZZ", "RB-608-B")
	assert.NotEqual(t, a, b)
}
