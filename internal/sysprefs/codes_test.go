package sysprefs

import "testing"

func TestSaveOption_Codes(t *testing.T) {
	tests := []struct {
		opt     SaveOption
		bytes   string
		keyword string
	}{
		{SaveYes, "yes ", "yes"},
		{SaveNo, "no  ", "no"},
		{SaveAsk, "ask ", "ask"},
	}
	for _, tt := range tests {
		b := tt.opt.Code().Bytes()
		if string(b[:]) != tt.bytes {
			t.Errorf("%v bytes: got %q, want %q", tt.opt, string(b[:]), tt.bytes)
		}
		if kw, ok := tt.opt.Keyword(); !ok || kw != tt.keyword {
			t.Errorf("%v keyword: got %q %v", tt.opt, kw, ok)
		}
		if tt.opt.String() != tt.keyword {
			t.Errorf("String: got %q", tt.opt.String())
		}
	}
}

func TestPrintErrorHandling_Codes(t *testing.T) {
	if s := PrintStandard.Code().String(); s != "lwst" {
		t.Errorf("standard: got %q", s)
	}
	if s := PrintDetailed.Code().String(); s != "lwdt" {
		t.Errorf("detailed: got %q", s)
	}
	if _, ok := PrintErrorHandling(0).Keyword(); ok {
		t.Error("zero value should have no keyword")
	}
}

func TestParseFourCC(t *testing.T) {
	c, err := ParseFourCC("ask ")
	if err != nil {
		t.Fatal(err)
	}
	if SaveOption(c) != SaveAsk {
		t.Errorf("got %#x", uint32(c))
	}
	for _, bad := range []string{"", "ask", "asked"} {
		if _, err := ParseFourCC(bad); err == nil {
			t.Errorf("ParseFourCC(%q): expected error", bad)
		}
	}
}

func TestParseSaveOption(t *testing.T) {
	tests := []struct {
		in      string
		want    SaveOption
		wantErr bool
	}{
		{"yes", SaveYes, false},
		{"NO", SaveNo, false},
		{" ask ", SaveAsk, false},
		{"no  ", SaveNo, false},
		{"maybe", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSaveOption(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSaveOption(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSaveOption(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePrintErrorHandling(t *testing.T) {
	for in, want := range map[string]PrintErrorHandling{
		"standard": PrintStandard,
		"Detailed": PrintDetailed,
		"lwst":     PrintStandard,
		"lwdt":     PrintDetailed,
	} {
		got, err := ParsePrintErrorHandling(in)
		if err != nil || got != want {
			t.Errorf("ParsePrintErrorHandling(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePrintErrorHandling("verbose"); err == nil {
		t.Error("expected error")
	}
}
