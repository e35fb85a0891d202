package diag

import "testing"

func TestBagLimitAndCounts(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(SemaTypeMismatch, sp(0, 1), "a")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(New(SevWarning, SemaTypeMismatch, sp(0, 1), "b")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewError(SemaTypeMismatch, sp(0, 1), "c")) {
		t.Fatal("limit not enforced")
	}
	if bag.Len() != 2 || !bag.HasErrors() {
		t.Fatalf("len=%d hasErrors=%v", bag.Len(), bag.HasErrors())
	}
	if got := bag.Count(SevWarning); got != 2 {
		t.Fatalf("Count(warning) = %d", got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(16)
	r := NewDedupReporter(&BagReporter{Bag: bag})
	r.Report(SemaTypeMismatch, SevError, sp(0, 1), "m", nil)
	r.Report(SemaTypeMismatch, SevError, sp(0, 1), "m", nil)
	r.Report(SemaTypeMismatch, SevError, sp(0, 2), "m", nil)
	r.Report(SemaNoOverload, SevError, sp(0, 1), "m", nil)
	if bag.Len() != 3 {
		t.Fatalf("expected 3 unique diagnostics, got %v", bag.Codes())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(16)
	b := ReportError(&BagReporter{Bag: bag}, SemaNoOverload, sp(3, 4), "no overload").
		WithNote(sp(0, 1), "candidate")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("emitted %d times", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatal("note lost")
	}
}

func TestCodeFormatting(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexBadNumber, "[LEX1004]: Bad number"},
		{SynExpectExpression, "[SYN2203]: Expect expression"},
		{SemaNoOverload, "[SEM3046]: No matching overload found"},
		{IOLoadFileError, "[IO4001]: I/O load file error"},
	}
	for _, tc := range cases {
		if got := tc.code.String(); got != tc.want {
			t.Errorf("%d: got %q want %q", tc.code, got, tc.want)
		}
	}
}
