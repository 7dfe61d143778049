package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/payroll"
	"github.com/uchiyama0208/nightbase-sub009/internal/pkg/businessday"
)

var jst = time.FixedZone("JST", 9*60*60)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func dayConfig() businessday.Config {
	return businessday.Config{SwitchHour: 6, SwitchMinute: 0, Location: jst}
}

func basePlan() payroll.CompensationPlan {
	return payroll.CompensationPlan{
		HourlyRate:   1200,
		TimeRounding: payroll.DefaultTimeRounding,
		PayoutRules:  map[payroll.FeeType]payroll.PayoutRule{},
	}
}

// ===== CLASSIFICATION =====

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		label string
		want  payroll.FeeType
	}{
		{"nomination", "指名", payroll.FeeNomination},
		{"nomination fee item", "本指名料", payroll.FeeNomination},
		{"in-house", "場内", payroll.FeeInHouse},
		{"in-house nomination classifies in-house", "場内指名", payroll.FeeInHouse},
		{"companion", "同伴", payroll.FeeCompanion},
		{"plain drink", "ドリンク", payroll.FeeNone},
		{"empty", "", payroll.FeeNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			item := payroll.SoldItem{MenuItemID: strPtr("m1"), Category: strPtr(c.label)}
			assert.Equal(t, c.want, Classify(item))
		})
	}
}

func TestClassifyUsesFreeTextNameWhenUncatalogued(t *testing.T) {
	item := payroll.SoldItem{Name: strPtr("場内指名料")}
	assert.Equal(t, payroll.FeeInHouse, Classify(item))
}

// ===== TIME NORMALIZATION =====

func TestWorkedMinutesOvernightWrap(t *testing.T) {
	// Clock-out wall clock earlier than clock-in means the shift crossed
	// midnight: 23:00 to 02:00 is 180 minutes, never negative.
	entry := payroll.TimeEntry{
		WorkDate: "2024-01-01",
		ClockIn:  timePtr(time.Date(2024, 1, 1, 23, 0, 0, 0, jst)),
		ClockOut: timePtr(time.Date(2024, 1, 1, 2, 0, 0, 0, jst)),
	}
	minutes, err := WorkedMinutes(entry, time.Now(), payroll.TimeRounding{UnitMinutes: 1, Mode: payroll.RoundDown})
	require.NoError(t, err)
	assert.Equal(t, 180, minutes)
}

func TestWorkedMinutesRounding(t *testing.T) {
	// 18:00 to 19:37 is 97 raw minutes.
	entry := payroll.TimeEntry{
		WorkDate: "2024-01-01",
		ClockIn:  timePtr(time.Date(2024, 1, 1, 18, 0, 0, 0, jst)),
		ClockOut: timePtr(time.Date(2024, 1, 1, 19, 37, 0, 0, jst)),
	}

	cases := []struct {
		mode payroll.RoundingMode
		want int
	}{
		{payroll.RoundDown, 90},
		{payroll.RoundUp, 105},
		{payroll.RoundNearest, 90}, // 97 is closer to 90 than 105
	}
	for _, c := range cases {
		t.Run(string(c.mode), func(t *testing.T) {
			minutes, err := WorkedMinutes(entry, time.Now(), payroll.TimeRounding{UnitMinutes: 15, Mode: c.mode})
			require.NoError(t, err)
			assert.Equal(t, c.want, minutes)
		})
	}
}

func TestWorkedMinutesNoClockIn(t *testing.T) {
	entry := payroll.TimeEntry{WorkDate: "2024-01-01"}
	minutes, err := WorkedMinutes(entry, time.Now(), payroll.DefaultTimeRounding)
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)
}

func TestWorkedMinutesOpenShiftUsesNow(t *testing.T) {
	clockIn := time.Date(2024, 1, 1, 20, 0, 0, 0, jst)
	now := time.Date(2024, 1, 1, 22, 30, 0, 0, jst)
	entry := payroll.TimeEntry{WorkDate: "2024-01-01", ClockIn: &clockIn}

	minutes, err := WorkedMinutes(entry, now, payroll.TimeRounding{UnitMinutes: 1, Mode: payroll.RoundDown})
	require.NoError(t, err)
	assert.Equal(t, 150, minutes)
}

func TestWorkedMinutesMalformedEntry(t *testing.T) {
	// Clock-out more than 24h before clock-in survives no adjustment.
	entry := payroll.TimeEntry{
		WorkDate: "2024-01-05",
		ClockIn:  timePtr(time.Date(2024, 1, 5, 20, 0, 0, 0, jst)),
		ClockOut: timePtr(time.Date(2024, 1, 3, 10, 0, 0, 0, jst)),
	}
	_, err := WorkedMinutes(entry, time.Now(), payroll.DefaultTimeRounding)
	assert.ErrorIs(t, err, payroll.ErrMalformedTimeEntry)
}

func TestHourlyWageScenario(t *testing.T) {
	// 18:00-23:30 is 5.5h raw; 330 is within 30min of 360 so hour-nearest
	// rounds to 6h; 6h x 1200 = 7200.
	entry := payroll.TimeEntry{
		WorkDate: "2024-01-01",
		ClockIn:  timePtr(time.Date(2024, 1, 1, 18, 0, 0, 0, jst)),
		ClockOut: timePtr(time.Date(2024, 1, 1, 23, 30, 0, 0, jst)),
	}
	minutes, err := WorkedMinutes(entry, time.Now(), payroll.DefaultTimeRounding)
	require.NoError(t, err)
	assert.Equal(t, 360, minutes)
	assert.Equal(t, int64(7200), HourlyWage(minutes, 1200))
}

func TestHourlyWageFloorsAfterMultiplication(t *testing.T) {
	// 90 minutes at 1234/h: floor(90x1234/60) = floor(1851.0) = 1851;
	// flooring minutes/60 first would give 1234.
	assert.Equal(t, int64(1851), HourlyWage(90, 1234))
}

// ===== BACK AMOUNT =====

func TestBackAmountPercentage(t *testing.T) {
	plan := basePlan()
	plan.PayoutRules[payroll.FeeNomination] = payroll.PayoutRule{Mode: payroll.PayoutPercentTotal, Percentage: 50}

	item := payroll.SoldItem{MenuItemID: strPtr("m1"), Category: strPtr("指名"), UnitPrice: 3000, Quantity: 1}
	assert.Equal(t, int64(1500), BackAmount(item, Classify(item), plan))
}

func TestBackAmountFixed(t *testing.T) {
	plan := basePlan()
	plan.PayoutRules[payroll.FeeCompanion] = payroll.PayoutRule{Mode: payroll.PayoutFixed, Amount: 2000}

	item := payroll.SoldItem{MenuItemID: strPtr("m1"), Category: strPtr("同伴"), UnitPrice: 5000, Quantity: 3}
	assert.Equal(t, int64(6000), BackAmount(item, Classify(item), plan))
}

func TestBackAmountDefaultPayout(t *testing.T) {
	plan := basePlan()

	item := payroll.SoldItem{MenuItemID: strPtr("m1"), Category: strPtr("シャンパン"), UnitPrice: 30000, Quantity: 2, DefaultPayout: 500}
	assert.Equal(t, int64(1000), BackAmount(item, Classify(item), plan))
}

func TestBackAmountRounding(t *testing.T) {
	item := payroll.SoldItem{MenuItemID: strPtr("m1"), Category: strPtr("指名"), UnitPrice: 3333, Quantity: 1}

	cases := []struct {
		mode payroll.RoundingMode
		want int64
	}{
		{payroll.RoundDown, 1600},    // floor(1666.5)=1666 -> 1600
		{payroll.RoundUp, 1700},      // -> 1700
		{payroll.RoundNearest, 1700}, // 1666 -> 1700
	}
	for _, c := range cases {
		t.Run(string(c.mode), func(t *testing.T) {
			plan := basePlan()
			plan.PayoutRules[payroll.FeeNomination] = payroll.PayoutRule{
				Mode: payroll.PayoutPercentTotal, Percentage: 50,
				RoundingMode: c.mode, RoundingUnit: 100,
			}
			assert.Equal(t, c.want, BackAmount(item, payroll.FeeNomination, plan))
		})
	}
}

// ===== DEDUCTIONS =====

func TestDeductionTotal(t *testing.T) {
	rules := []payroll.DeductionRule{
		{Type: payroll.DeductionFixed, Amount: 500},
		{Type: payroll.DeductionPercent, Amount: 10},
	}
	assert.Equal(t, int64(1500), DeductionTotal(10000, rules))
}

func TestPercentDeductionsDoNotCompound(t *testing.T) {
	rules := []payroll.DeductionRule{
		{Type: payroll.DeductionPercent, Amount: 10},
		{Type: payroll.DeductionPercent, Amount: 10},
	}
	// Each 10% runs against the original 10000: 1000 + 1000, not
	// 1000 + 900.
	assert.Equal(t, int64(2000), DeductionTotal(10000, rules))
}

// ===== AGGREGATION =====

func TestBuildStatementsSameDateItems(t *testing.T) {
	plan := basePlan()
	plan.HourlyRate = 0
	plan.PayoutRules[payroll.FeeCompanion] = payroll.PayoutRule{Mode: payroll.PayoutFixed, Amount: 2000}

	sessionStart := time.Date(2024, 1, 15, 21, 0, 0, 0, jst)
	in := CalcInput{
		StaffID:   "s1",
		StaffName: "あかり",
		Items: []payroll.SoldItem{
			{MenuItemID: strPtr("m1"), Category: strPtr("同伴"), UnitPrice: 5000, Quantity: 1, SessionStartedAt: sessionStart},
			{Name: strPtr("イベントボトル"), UnitPrice: 8000, Quantity: 2, DefaultPayout: 500, SessionStartedAt: sessionStart},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	statements, warnings, err := BuildStatements(in)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, statements, 1)
	assert.Equal(t, "2024-01-15", statements[0].BusinessDate)
	assert.Equal(t, int64(3000), statements[0].BackAmount)
	assert.Equal(t, int64(3000), statements[0].Total)
}

func TestBuildStatementsOvernightSessionKeepsOpeningDate(t *testing.T) {
	plan := basePlan()
	plan.HourlyRate = 0

	// Session opened 23:00 on the 15th; the item itself was rung in after
	// midnight but the session's business date wins.
	in := CalcInput{
		StaffID: "s1",
		Items: []payroll.SoldItem{
			{Name: strPtr("ドリンク"), UnitPrice: 1000, Quantity: 1, DefaultPayout: 100,
				SessionStartedAt: time.Date(2024, 1, 15, 23, 0, 0, 0, jst)},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	statements, _, err := BuildStatements(in)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "2024-01-15", statements[0].BusinessDate)
}

func TestBuildStatementsSortedDescending(t *testing.T) {
	plan := basePlan()
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, jst)

	in := CalcInput{
		StaffID:   "s1",
		StaffName: "あかり",
		Entries: []payroll.TimeEntry{
			{WorkDate: "2024-01-10", ClockIn: timePtr(time.Date(2024, 1, 10, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 10, 23, 0, 0, 0, jst))},
			{WorkDate: "2024-01-12", ClockIn: timePtr(time.Date(2024, 1, 12, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 12, 23, 0, 0, 0, jst))},
			{WorkDate: "2024-01-11", ClockIn: timePtr(time.Date(2024, 1, 11, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 11, 23, 0, 0, 0, jst))},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  now,
	}

	statements, _, err := BuildStatements(in)
	require.NoError(t, err)
	require.Len(t, statements, 3)
	assert.Equal(t, "2024-01-12", statements[0].BusinessDate)
	assert.Equal(t, "2024-01-11", statements[1].BusinessDate)
	assert.Equal(t, "2024-01-10", statements[2].BusinessDate)
	assert.Equal(t, "01/12(金)", statements[0].Label)
}

func TestBuildStatementsIdempotent(t *testing.T) {
	plan := basePlan()
	plan.PayoutRules[payroll.FeeNomination] = payroll.PayoutRule{Mode: payroll.PayoutPercentTotal, Percentage: 50}
	plan.Deductions = []payroll.DeductionRule{
		{Type: payroll.DeductionFixed, Amount: 500},
		{Type: payroll.DeductionPercent, Amount: 10},
	}

	in := CalcInput{
		StaffID:   "s1",
		StaffName: "あかり",
		Entries: []payroll.TimeEntry{
			{WorkDate: "2024-01-15", ClockIn: timePtr(time.Date(2024, 1, 15, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 15, 23, 30, 0, 0, jst))},
		},
		Items: []payroll.SoldItem{
			{MenuItemID: strPtr("m1"), Category: strPtr("指名"), UnitPrice: 3000, Quantity: 1,
				SessionStartedAt: time.Date(2024, 1, 15, 20, 0, 0, 0, jst)},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	first, firstWarnings, err := BuildStatements(in)
	require.NoError(t, err)
	second, secondWarnings, err := BuildStatements(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstWarnings, secondWarnings)
}

func TestBuildStatementsDeductionsAgainstFinalGross(t *testing.T) {
	plan := basePlan()
	plan.PayoutRules[payroll.FeeNomination] = payroll.PayoutRule{Mode: payroll.PayoutPercentTotal, Percentage: 50}
	plan.Deductions = []payroll.DeductionRule{
		{Type: payroll.DeductionFixed, Amount: 500},
		{Type: payroll.DeductionPercent, Amount: 10},
	}

	in := CalcInput{
		StaffID:   "s1",
		StaffName: "あかり",
		Entries: []payroll.TimeEntry{
			// 6h rounded -> 7200 hourly
			{WorkDate: "2024-01-15", ClockIn: timePtr(time.Date(2024, 1, 15, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 15, 23, 30, 0, 0, jst))},
		},
		Items: []payroll.SoldItem{
			// 50% of 5600 -> 2800 back; gross 10000
			{MenuItemID: strPtr("m1"), Category: strPtr("指名"), UnitPrice: 5600, Quantity: 1,
				SessionStartedAt: time.Date(2024, 1, 15, 20, 0, 0, 0, jst)},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	statements, _, err := BuildStatements(in)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, int64(7200), statements[0].HourlyWage)
	assert.Equal(t, int64(2800), statements[0].BackAmount)
	assert.Equal(t, int64(1500), statements[0].Deduction)
	assert.Equal(t, int64(8500), statements[0].Total)
}

func TestBuildStatementsTotalMayGoNegative(t *testing.T) {
	plan := basePlan()
	plan.HourlyRate = 0
	plan.Deductions = []payroll.DeductionRule{{Type: payroll.DeductionFixed, Amount: 5000}}

	in := CalcInput{
		StaffID: "s1",
		Entries: []payroll.TimeEntry{
			{WorkDate: "2024-01-15", ClockIn: timePtr(time.Date(2024, 1, 15, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 15, 19, 0, 0, 0, jst))},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	statements, _, err := BuildStatements(in)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.GreaterOrEqual(t, statements[0].HourlyWage, int64(0))
	assert.GreaterOrEqual(t, statements[0].BackAmount, int64(0))
	assert.Equal(t, int64(-5000), statements[0].Total)
}

func TestBuildStatementsSkipsExcludedLabels(t *testing.T) {
	plan := basePlan()
	plan.HourlyRate = 0
	plan.ExcludedLabels = []string{"延長料金"}

	sessionStart := time.Date(2024, 1, 15, 21, 0, 0, 0, jst)
	in := CalcInput{
		StaffID: "s1",
		Items: []payroll.SoldItem{
			{MenuItemID: strPtr("m1"), Category: strPtr("延長料金"), UnitPrice: 3000, Quantity: 1, DefaultPayout: 1000, SessionStartedAt: sessionStart},
			{Name: strPtr("持ち込みチャージ"), UnitPrice: 2000, Quantity: 1, DefaultPayout: 300, SessionStartedAt: sessionStart},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	statements, warnings, err := BuildStatements(in)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, statements, 1)
	// Only the uncatalogued temporary item counts.
	assert.Equal(t, int64(300), statements[0].BackAmount)
}

func TestBuildStatementsSkipsMalformedRowsWithWarnings(t *testing.T) {
	plan := basePlan()

	in := CalcInput{
		StaffID: "s1",
		Entries: []payroll.TimeEntry{
			{WorkDate: "2024-01-15", ClockIn: timePtr(time.Date(2024, 1, 15, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 13, 2, 0, 0, 0, jst))},
			{WorkDate: "2024-01-14", ClockIn: timePtr(time.Date(2024, 1, 14, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 14, 23, 0, 0, 0, jst))},
		},
		Items: []payroll.SoldItem{
			{UnitPrice: 1000, Quantity: 1, SessionStartedAt: time.Date(2024, 1, 14, 21, 0, 0, 0, jst)},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	statements, warnings, err := BuildStatements(in)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "2024-01-14", statements[0].BusinessDate)
	require.Len(t, warnings, 2)
	assert.Equal(t, "time_entry", warnings[0].Row)
	assert.Equal(t, "line_item", warnings[1].Row)
}

func TestBuildStatementsEmptyInput(t *testing.T) {
	in := CalcInput{StaffID: "s1", Plan: basePlan(), Day: dayConfig(), Now: time.Now()}

	statements, warnings, err := BuildStatements(in)
	require.NoError(t, err)
	assert.Empty(t, statements)
	assert.Empty(t, warnings)
}

func TestBuildStatementsBrokenPlanAborts(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*payroll.CompensationPlan)
		wantErr error
	}{
		{"zero rounding unit", func(p *payroll.CompensationPlan) {
			p.TimeRounding.UnitMinutes = 0
		}, payroll.ErrInvalidTimeRounding},
		{"percentage out of range", func(p *payroll.CompensationPlan) {
			p.PayoutRules[payroll.FeeNomination] = payroll.PayoutRule{Mode: payroll.PayoutPercentTotal, Percentage: 150}
		}, payroll.ErrInvalidPayoutRule},
		{"unknown payout mode", func(p *payroll.CompensationPlan) {
			p.PayoutRules[payroll.FeeNomination] = payroll.PayoutRule{Mode: "half"}
		}, payroll.ErrUnknownPayoutMode},
		{"bad deduction type", func(p *payroll.CompensationPlan) {
			p.Deductions = []payroll.DeductionRule{{Type: "tithe", Amount: 10}}
		}, payroll.ErrInvalidDeductionRule},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			plan := basePlan()
			c.mutate(&plan)
			_, _, err := BuildStatements(CalcInput{StaffID: "s1", Plan: plan, Day: dayConfig(), Now: time.Now()})
			assert.ErrorIs(t, err, c.wantErr)
		})
	}
}

func TestBuildStatementsAcceptsRulesWithoutRoundingMode(t *testing.T) {
	plan := basePlan()
	plan.PayoutRules[payroll.FeeNomination] = payroll.PayoutRule{Mode: payroll.PayoutPercentTotal, Percentage: 50}
	plan.PayoutRules[payroll.FeeCompanion] = payroll.PayoutRule{Mode: payroll.PayoutFixed, Amount: 2000}
	require.NoError(t, plan.Validate())

	started := time.Date(2024, 1, 15, 20, 0, 0, 0, jst)
	_, warnings, err := BuildStatements(CalcInput{
		StaffID: "s1",
		Plan:    plan,
		Day:     dayConfig(),
		Now:     time.Now(),
		Items: []payroll.SoldItem{
			{MenuItemID: strPtr("m1"), Category: strPtr("指名"), UnitPrice: 3000, Quantity: 1, SessionStartedAt: started},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestBuildStatementsMissingNamePlaceholder(t *testing.T) {
	plan := basePlan()
	in := CalcInput{
		StaffID: "s1",
		Entries: []payroll.TimeEntry{
			{WorkDate: "2024-01-15", ClockIn: timePtr(time.Date(2024, 1, 15, 18, 0, 0, 0, jst)), ClockOut: timePtr(time.Date(2024, 1, 15, 23, 0, 0, 0, jst))},
		},
		Plan: plan,
		Day:  dayConfig(),
		Now:  time.Date(2024, 1, 16, 12, 0, 0, 0, jst),
	}

	statements, _, err := BuildStatements(in)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "名前未設定", statements[0].StaffName)
}
