package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

func TestAddSkinfoldAndSessionNote(t *testing.T) {
	ctx := context.Background()
	svc, env := newStudentService(t)

	student, err := svc.Create(ctx, CreateStudentRequest{FullName: "Maria Silva"})
	require.NoError(t, err)

	triceps := 12.5
	student, err = svc.AddSkinfold(ctx, student.ID, SkinfoldRequest{
		Date:      testNow,
		TricepsMm: &triceps,
		Notes:     "pos-ferias",
	})
	require.NoError(t, err)
	require.Equal(t, "dobra-aluno-1-1", student.Skinfolds[0].ID)
	require.Equal(t, 12.5, *student.Skinfolds[0].TricepsMm)
	// Unmeasured sites stay absent rather than zero.
	require.Nil(t, student.Skinfolds[0].ThighMm)

	student, err = svc.AddSessionNote(ctx, student.ID, NoteRequest{Date: testNow, Text: "Evoluiu no agachamento."})
	require.NoError(t, err)
	require.Equal(t, "nota-aluno-1-1", student.SessionNotes[0].ID)

	_, err = svc.AddSessionNote(ctx, student.ID, NoteRequest{Date: testNow})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// The cache mirrors subcollection writes.
	cached := env.cache.Snapshot().Students[0]
	require.Len(t, cached.Skinfolds, 1)
	require.Len(t, cached.SessionNotes, 1)
}

func TestUpdatePaymentReplacesEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentService(t)

	student, err := svc.Create(ctx, CreateStudentRequest{FullName: "Maria Silva"})
	require.NoError(t, err)
	student, err = svc.AddPayment(ctx, student.ID, PaymentRequest{Amount: 150, Date: testNow, Status: "pending"})
	require.NoError(t, err)
	paymentID := student.Payments[0].ID

	student, err = svc.UpdatePayment(ctx, student.ID, paymentID, PaymentRequest{Amount: 180, Date: testNow, Status: "paid", Method: "pix"})
	require.NoError(t, err)
	require.Len(t, student.Payments, 1)
	require.Equal(t, paymentID, student.Payments[0].ID)
	require.InDelta(t, 180, student.Payments[0].Amount, 0.001)
	require.Equal(t, "pix", student.Payments[0].Method)

	_, err = svc.UpdatePayment(ctx, student.ID, "pg-aluno-1-9", PaymentRequest{Amount: 10, Date: testNow, Status: "paid"})
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
