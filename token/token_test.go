package token

import "testing"

func TestScanBasic(t *testing.T) {
	src := "%FSLAX26Y26*%\n%MOMM*%\nD10*\nX0Y0D02*\nM02*"
	toks := Scan(src)

	wantKinds := []Kind{ExtendedBlock, ExtendedBlock, Command, Command, Command, EOF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: Kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[0].Value != "FSLAX26Y26*" {
		t.Errorf("token 0 Value = %q", toks[0].Value)
	}
	if toks[2].Value != "D10" {
		t.Errorf("token 2 Value = %q", toks[2].Value)
	}
	for _, tok := range toks[:len(toks)-1] {
		if !tok.Terminated {
			t.Errorf("token %+v should be terminated", tok)
		}
	}
}

func TestScanSkipsWhitespaceAndTracksPosition(t *testing.T) {
	src := "  G04 hi*\n  M02*"
	toks := Scan(src)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
	if toks[0].Line != 1 || toks[0].Column != 3 {
		t.Errorf("token 0 position = %d:%d, want 1:3", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 {
		t.Errorf("token 1 line = %d, want 2", toks[1].Line)
	}
}

func TestScanUnterminatedBlock(t *testing.T) {
	toks := Scan("%FSLAX26Y26*")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	if toks[0].Kind != ExtendedBlock || toks[0].Terminated {
		t.Errorf("token 0 = %+v, want unterminated ExtendedBlock", toks[0])
	}
}

func TestScanUnterminatedCommand(t *testing.T) {
	toks := Scan("M02")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	if toks[0].Kind != Command || toks[0].Terminated || toks[0].Value != "M02" {
		t.Errorf("token 0 = %+v, want unterminated Command \"M02\"", toks[0])
	}
}

func TestScanRetainsInnerTrailingStar(t *testing.T) {
	// An extended block's inner text may itself contain a trailing '*';
	// the tokenizer must retain it verbatim.
	toks := Scan("%AMDONUT*1,1,$1,0,0,0**%")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	want := "AMDONUT*1,1,$1,0,0,0**"
	if toks[0].Value != want {
		t.Errorf("token 0 Value = %q, want %q", toks[0].Value, want)
	}
}

func TestScanEmptyInput(t *testing.T) {
	toks := Scan("")
	if len(toks) != 1 || toks[0].Kind != EOF {
		t.Fatalf("Scan(\"\") = %+v, want single EOF token", toks)
	}
}
