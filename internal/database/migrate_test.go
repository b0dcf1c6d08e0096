package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Columns the repositories scan through sql.NullString and insert from
// *string must stay nullable in the schema; a NOT NULL declaration
// there turns an omitted optional field into MySQL error 1048 at
// insert time.
func TestOptionalColumnsAreNullable(t *testing.T) {
	cases := []struct {
		file   string
		column string
	}{
		{"0002_rooms.sql", "description"},
		{"0002_rooms.sql", "image_url"},
		{"0003_consumables.sql", "description"},
		{"0005_bookings.sql", "special_requests"},
	}
	for _, tc := range cases {
		raw, err := migrationsFS.ReadFile("migrations/" + tc.file)
		require.NoError(t, err)

		var line string
		for _, l := range strings.Split(string(raw), "\n") {
			if strings.HasPrefix(strings.TrimSpace(l), tc.column+" ") {
				line = l
				break
			}
		}
		require.NotEmpty(t, line, "%s: column %s not declared", tc.file, tc.column)
		require.NotContains(t, line, "NOT NULL", "%s: %s must allow NULL", tc.file, tc.column)
	}
}
