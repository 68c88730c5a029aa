package models

import "testing"

func TestDownloadsCurrent(t *testing.T) {
	single := &DownloadRecordType{Downloads: 5, Package: "foo"}

	tests := []struct {
		description string
		downloads   DownloadsType
		expected    *DownloadRecordType
	}{
		{"nothing", DownloadsType{}, nil},
		{"single record", DownloadsType{Record: single}, single},
		{"empty sequence", DownloadsType{Records: []DownloadRecordType{}}, nil},
		{
			"sequence",
			DownloadsType{Records: []DownloadRecordType{{Downloads: 42}, {Downloads: 1}}},
			&DownloadRecordType{Downloads: 42},
		},
	}

	for _, test := range tests {
		out := test.downloads.Current()
		switch {
		case test.expected == nil && out != nil:
			t.Errorf("%s: expected nil, got %+v", test.description, out)
		case test.expected != nil && out == nil:
			t.Errorf("%s: expected %+v, got nil", test.description, test.expected)
		case test.expected != nil && *out != *test.expected:
			t.Errorf("%s: expected %+v, got %+v", test.description, test.expected, out)
		}
	}
}

func TestDownloadsCurrentCopiesFirstRecord(t *testing.T) {
	d := DownloadsType{Records: []DownloadRecordType{{Downloads: 42}}}

	d.Current().Downloads = 0

	if d.Records[0].Downloads != 42 {
		t.Error("Current should not alias the store's records")
	}
}
