package comments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasProof(t *testing.T) {
	tests := []struct {
		name        string
		proofImages []string
		want        bool
	}{
		{"no images", nil, false},
		{"empty slice", []string{}, false},
		{"blank refs only", []string{"", "   "}, false},
		{"one real ref", []string{"https://res.cloudinary.com/demo/proof.jpg"}, true},
		{"real ref among blanks", []string{"", "https://res.cloudinary.com/demo/proof.jpg"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Comment{ProofImages: tt.proofImages}
			require.Equal(t, tt.want, c.HasProof())
		})
	}
}
