package vault

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseRef(t *testing.T) {
	cases := []struct {
		in   string
		want Ref
		err  bool
	}{
		{"vault:secret/sitekit/db#password", Ref{"secret", "sitekit/db", "password"}, false},
		{"kv/tenants#dsn", Ref{"kv", "tenants", "dsn"}, false},
		{"vault:secret/sitekit", Ref{}, true},
		{"vault:secret#key", Ref{}, true},
		{"vault:secret/x#", Ref{}, true},
	}
	for _, tc := range cases {
		got, err := ParseRef(tc.in)
		if (err != nil) != tc.err {
			t.Errorf("ParseRef(%q) err = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRef(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseRef("vault:/x#k"); !errors.Is(err, ErrEmptyRef) {
		t.Errorf("empty mount err = %v, want ErrEmptyRef", err)
	}
	if r, _ := ParseRef("vault:secret/a/b#k"); r.String() != "vault:secret/a/b#k" {
		t.Errorf("String() = %q", r.String())
	}
}

func TestClient_ServesCacheWithinTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	ref := Ref{"secret", "sitekit", "db_password"}
	c := &Client{cache: map[Ref]entry{ref: {val: "hunter2", exp: now.Add(time.Minute)}},
		now: func() time.Time { return now }}

	// api is nil: any miss would panic, so a hit proves the cache served it.
	v, err := c.GetKV(context.Background(), "secret/sitekit", "db_password", time.Minute)
	if err != nil || v != "hunter2" {
		t.Fatalf("GetKV = %q, %v", v, err)
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.cached(ref); ok {
		t.Fatalf("expired entry served")
	}
}
