package prompt

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormat_BoldsEachBlock(t *testing.T) {
	raw := "Day: Monday\n  - Breakfast: oats\n\n  Day: Tuesday  \n\nEnjoy!"
	want := "**Day: Monday\n  - Breakfast: oats**\n\n**Day: Tuesday**\n\n**Enjoy!**\n\n"
	if got := Format(raw); got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormat_NoBlankLines(t *testing.T) {
	if got := Format("single block"); got != "**single block**\n\n" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormat_CRLF(t *testing.T) {
	raw := "Day: Monday\r\nOats\r\n\r\nDay: Tuesday\r\n\r\nRest"
	want := "**Day: Monday\nOats**\n\n**Day: Tuesday**\n\n**Rest**\n\n"
	if got := Format(raw); got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
	if got := Blocks(raw); len(got) != 3 {
		t.Errorf("Blocks() = %q, want 3 blocks", got)
	}
}

func TestBlocks_SkipsEmpty(t *testing.T) {
	got := Blocks("a\n\n\n\nb\n\n   ")
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Blocks() = %q, want %q", got, want)
	}
}

func TestValidate_AllDaysPresent(t *testing.T) {
	raw := strings.Join(Weekdays, "\n\n")
	if missing := Validate(raw); missing != nil {
		t.Errorf("Validate() = %v, want nil", missing)
	}
}

func TestValidate_ReportsMissingInWeekOrder(t *testing.T) {
	raw := "Day: monday\n\nDay: Wednesday\n\nDay: Friday\n\nSundays are for rest"
	want := []string{"Tuesday", "Thursday", "Saturday", "Sunday"}
	if got := Validate(raw); !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, want %v", got, want)
	}
}
