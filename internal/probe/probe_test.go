package probe

import "testing"

func TestURLFromTitle(t *testing.T) {
	cases := []struct {
		Name     string
		Title    string
		Expected string
	}{
		{
			Name:     "full url in title",
			Title:    "lapse - https://github.com/lapseapp/lapse - Google Chrome",
			Expected: "https://github.com/lapseapp/lapse",
		},
		{
			Name:     "bare host",
			Title:    "news.ycombinator.com - Hacker News",
			Expected: "news.ycombinator.com",
		},
		{
			Name:     "plain title",
			Title:    "Inbox (42) - Thunderbird",
			Expected: "",
		},
		{
			Name:     "version number is not a host",
			Title:    "release v1.2.3 notes",
			Expected: "",
		},
		{
			Name:     "empty title",
			Title:    "",
			Expected: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			got := URLFromTitle(tc.Title)
			if got != tc.Expected {
				t.Errorf(
					"expected url to be: %q, but got: %q",
					tc.Expected,
					got,
				)
			}
		})
	}
}
