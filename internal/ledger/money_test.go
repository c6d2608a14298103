package ledger

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    Cents
		wantErr bool
	}{
		{in: "5", want: 500},
		{in: "5.5", want: 550},
		{in: "5.55", want: 555},
		{in: "0", want: 0},
		{in: "1000.00", want: 100000},
		{in: " 12.30 ", want: 1230},
		{in: "-5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "5.555", wantErr: true},
		{in: "1,000", wantErr: true},
		{in: "", wantErr: true},
		{in: ".5", wantErr: true},
		{in: "5.", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %d, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseAmount(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestCentsFormat(t *testing.T) {
	if got := Cents(-1995).Format("$"); got != "-$19.95" {
		t.Fatalf("Format = %q, want -$19.95", got)
	}
	if got := Cents(200000).Format("$"); got != "$2000.00" {
		t.Fatalf("Format = %q, want $2000.00", got)
	}
	if got := Cents(5).Format("$"); got != "$0.05" {
		t.Fatalf("Format = %q, want $0.05", got)
	}
}

func TestCentsJSONRoundTrip(t *testing.T) {
	data, err := Cents(-550).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "-5.5" {
		t.Fatalf("marshal = %s, want -5.5", data)
	}
	var c Cents
	if err := c.UnmarshalJSON([]byte("2005.01")); err != nil {
		t.Fatal(err)
	}
	if c != 200501 {
		t.Fatalf("unmarshal = %d, want 200501", c)
	}
}
