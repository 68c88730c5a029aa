package helpers

import (
	"sync"
	"testing"
)

func TestSessionID(t *testing.T) {
	message := "SessionID(%q) = %q should be %q"

	tests := []struct {
		username string
		sid      string
	}{
		{"fakeusercouch", "50797e93"},
		{"fakeusercli", "bc687688"},
		{"bob", "8bdb39fa"},
		// No zero padding
		{"user12", "56f9a42"},
	}

	for _, test := range tests {
		if sid := SessionID(test.username); sid != test.sid {
			t.Errorf(message, test.username, sid, test.sid)
		}
	}
}

func TestSessionIDIsStable(t *testing.T) {
	if SessionID("bob") != SessionID("bob") {
		t.Error("SessionID should be a pure function of the username")
	}
	if SessionID("bob") == SessionID("alice") {
		t.Error("SessionID should differ for different usernames")
	}
}

func TestSessionIDConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if sid := SessionID("fakeusercli"); sid != "bc687688" {
					t.Errorf("SessionID(%q) = %q should be %q", "fakeusercli", sid, "bc687688")
					return
				}
			}
		}()
	}
	wg.Wait()
}
