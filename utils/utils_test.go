package utils

import (
	"bytes"
	"encoding/csv"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestBookingReference(t *testing.T) {
	at := time.Date(2024, 2, 9, 23, 30, 0, 0, time.UTC)
	ref, err := BookingReference(at)
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	if !regexp.MustCompile(`^VR-20240209-[A-Z0-9]{6}$`).MatchString(ref) {
		t.Fatalf("reference %q has the wrong shape", ref)
	}
	other, _ := BookingReference(at)
	if other == ref {
		t.Fatalf("two references collided: %s", ref)
	}
}

func TestGenerateCodeRejectsBadLength(t *testing.T) {
	if _, err := GenerateCode(0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := GenerateSecureToken(-1); err == nil {
		t.Fatal("expected error for negative length")
	}
	tok, err := GenerateSecureToken(16)
	if err != nil || len(tok) != 32 {
		t.Fatalf("token %q %v", tok, err)
	}
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"asha@example.com": "a**a@e******.com",
		"ab@mail.in":       "a*@m***.in",
		"not-an-email":     "not-an-email",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Errorf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	tok, expires, err := CreateAdminToken("s3cret", 7, "admin@villa.test", time.Hour, now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !expires.Equal(now.Add(time.Hour)) {
		t.Fatalf("expires = %v", expires)
	}
	claims, err := ValidateAdminToken("s3cret", tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != 7 || claims.Email != "admin@villa.test" || claims.Subject != "7" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := ValidateAdminToken("other", tok); err == nil {
		t.Fatal("token accepted with the wrong secret")
	}
	if _, err := ValidateAdminToken("s3cret", ""); err == nil {
		t.Fatal("empty token accepted")
	}
}

func TestAdminTokenExpiry(t *testing.T) {
	tok, _, err := CreateAdminToken("s3cret", 1, "a@b.c", time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ValidateAdminToken("s3cret", tok); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestWriteCSVQuotes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"name", "note"}, [][]string{{"Rao, Asha", "line1\nline2"}, {`say "hi"`, ""}})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `"Rao, Asha"`) {
		t.Fatalf("comma field not quoted: %s", buf.String())
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil || len(records) != 3 {
		t.Fatalf("read back %d records: %v", len(records), err)
	}
	if records[1][1] != "line1\nline2" || records[2][0] != `say "hi"` {
		t.Fatalf("records = %q", records)
	}
}
