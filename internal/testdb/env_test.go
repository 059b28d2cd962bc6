package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		fallback string
		want     string
	}{
		{name: "none", want: ""},
		{name: "primary wins", primary: "postgres://a", fallback: "postgres://b", want: "postgres://a"},
		{name: "fallback", fallback: "postgres://b", want: "postgres://b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", tc.primary)
			t.Setenv("TASKREPORT_TEST_DB_URL", tc.fallback)

			assert.Equal(t, tc.want, GetTestDatabaseURL())
			assert.Equal(t, tc.want == "", ShouldSkipDatabaseTest())
		})
	}
}
