package breed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/dogs/internal/domain/breed"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "hound", want: "Hound"},
		{id: "test_breed", want: "Test_breed"},
		{id: "Akita", want: "Akita"},
		{id: "élan", want: "Élan"},
		{id: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, breed.DisplayName(tt.id))
		})
	}
}
