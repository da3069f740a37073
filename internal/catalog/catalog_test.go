package catalog

import "testing"

func TestDisplayName(t *testing.T) {
	c := Default()
	if got := c.DisplayName("cs101"); got != "Computer Science 101" {
		t.Fatalf("unexpected name: %q", got)
	}
	if got := c.DisplayName("bio300"); got != "bio300" {
		t.Fatalf("expected unknown id to fall back to itself, got %q", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	c := Default()
	list := c.List()
	if len(list) != 4 {
		t.Fatalf("expected 4 classes, got %d", len(list))
	}
	list[0].Name = "changed"
	if c.List()[0].Name == "changed" {
		t.Fatalf("List must not expose internal state")
	}
}
