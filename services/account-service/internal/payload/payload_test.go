package payload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "calendar date", input: "1990-04-01", want: time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2026-10-16T08:30:00Z", want: time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC)},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestProfileRequest_RoundTrip(t *testing.T) {
	income := 52000.5
	req := &ProfileRequest{
		FirstName:    "Alice",
		LastName:     "Liddell",
		Username:     "alice",
		Email:        "a@x.com",
		MobileNumber: "+15550100",
		DateOfBirth:  "1990-04-01",
		AnnualIncome: &income,
		Occupation:   "engineer",
		Address:      "1 Main St",
		State:        "CA",
		Zip:          "94000",
		Gender:       "female",
		Photo:        "data:image/png;base64,AAAA",
		Bio:          "hi",
	}

	profile, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, income, profile.AnnualIncome)

	resp := NewProfileResponse(profile)
	assert.Equal(t, "1990-04-01", resp.DateOfBirth)
	assert.Equal(t, "+15550100", resp.MobileNumber)
}

func TestUpdateGoalRequest_ToParams(t *testing.T) {
	title := "House"
	date := "2030-01-01"

	params, err := (&UpdateGoalRequest{Title: &title, TargetDate: &date}).ToParams()
	require.NoError(t, err)
	assert.Equal(t, &title, params.Title)
	assert.Nil(t, params.Description)
	require.NotNil(t, params.TargetDate)
	assert.Equal(t, 2030, params.TargetDate.Year())

	bad := "soon"
	_, err = (&UpdateGoalRequest{TargetDate: &bad}).ToParams()
	assert.Error(t, err)
}

func TestTransactionRequest_ToModel(t *testing.T) {
	amount := 12.5

	tx, err := (&TransactionRequest{
		Email:           "a@x.com",
		Type:            "expense",
		Amount:          &amount,
		TransactionType: "food",
	}).ToModel()
	require.NoError(t, err)
	assert.True(t, tx.Date.IsZero())

	tx, err = (&TransactionRequest{
		Email:           "a@x.com",
		Type:            "income",
		Amount:          &amount,
		TransactionType: "salary",
		Date:            "2026-10-01",
	}).ToModel()
	require.NoError(t, err)
	assert.Equal(t, time.October, tx.Date.Month())

	resps := NewTransactionResponses([]*model.Transaction{tx})
	require.Len(t, resps, 1)
	assert.Equal(t, "salary", resps[0].TransactionType)
}
