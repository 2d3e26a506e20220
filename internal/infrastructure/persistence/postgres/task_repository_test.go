package postgres

import "testing"

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"report", "report"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
