package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/store"
	"github.com/MKhiriev/guardian-alarm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecordService(
	profiles *mockProfileRepository,
	records *mockRecordRepository,
	children *mockChildRepository,
) *recordService {
	l := logger.Nop()
	return NewRecordService(records, children, newAccessGate(profiles, l), l).(*recordService)
}

func TestRecordService_AddBiometricRecord_StampsTimestamp(t *testing.T) {
	var stored models.BiometricRecord
	records := &mockRecordRepository{
		addBiometricFn: func(_ context.Context, record models.BiometricRecord) (int64, error) {
			stored = record
			return 7, nil
		},
	}
	svc := newTestRecordService(adminProfiles("guardian"), records, &mockChildRepository{})
	svc.now = func() int64 { return 12345 }

	id, err := svc.AddBiometricRecord(context.Background(), "guardian", models.BiometricRecord{
		ChildID:   "c-1",
		DataType:  "fingerprint",
		Data:      []byte{0x01},
		Timestamp: 999, // client timestamps are ignored
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(12345), stored.Timestamp)
}

func TestRecordService_AddBiometricRecord_UnknownChild(t *testing.T) {
	children := &mockChildRepository{
		getChildFn: func(_ context.Context, _ string) (models.ChildProfile, error) {
			return models.ChildProfile{}, store.ErrChildNotFound
		},
	}
	svc := newTestRecordService(adminProfiles("guardian"), &mockRecordRepository{}, children)

	_, err := svc.AddBiometricRecord(context.Background(), "guardian", models.BiometricRecord{
		ChildID:  "ghost",
		DataType: "fingerprint",
		Data:     []byte{0x01},
	})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordService_AddBiometricRecord_NonAdminForbidden(t *testing.T) {
	svc := newTestRecordService(adminProfiles("guardian"), &mockRecordRepository{}, &mockChildRepository{})

	_, err := svc.AddBiometricRecord(context.Background(), "child", models.BiometricRecord{
		ChildID:  "c-1",
		DataType: "fingerprint",
		Data:     []byte{0x01},
	})

	require.ErrorIs(t, err, ErrForbidden)
}

func TestRecordService_AddTouchRecord_EmptySamplesAccepted(t *testing.T) {
	records := &mockRecordRepository{
		addTouchFn: func(_ context.Context, record models.TouchRecord) (int64, error) {
			assert.Empty(t, record.Samples)
			return 1, nil
		},
	}
	svc := newTestRecordService(adminProfiles("guardian"), records, &mockChildRepository{})

	id, err := svc.AddTouchRecord(context.Background(), "guardian", models.TouchRecord{ChildID: "c-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestRecordService_AddTouchRecord_SamplesNotClamped(t *testing.T) {
	sample := models.TouchSample{X: -3.5, Y: 42.0, Force: 1e9, RotationAngle: -720}
	records := &mockRecordRepository{
		addTouchFn: func(_ context.Context, record models.TouchRecord) (int64, error) {
			require.Len(t, record.Samples, 1)
			assert.Equal(t, sample, record.Samples[0])
			return 2, nil
		},
	}
	svc := newTestRecordService(adminProfiles("guardian"), records, &mockChildRepository{})

	_, err := svc.AddTouchRecord(context.Background(), "guardian", models.TouchRecord{
		ChildID: "c-1",
		Samples: []models.TouchSample{sample},
	})

	require.NoError(t, err)
}

func TestRecordService_DeleteBiometricRecord_NotFound(t *testing.T) {
	records := &mockRecordRepository{
		deleteBiometricFn: func(_ context.Context, _ int64) error {
			return store.ErrRecordNotFound
		},
	}
	svc := newTestRecordService(adminProfiles("guardian"), records, &mockChildRepository{})

	err := svc.DeleteBiometricRecord(context.Background(), "guardian", 99)

	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordService_DeleteTouchRecord_Success(t *testing.T) {
	var deletedID int64
	records := &mockRecordRepository{
		deleteTouchFn: func(_ context.Context, recordID int64) error {
			deletedID = recordID
			return nil
		},
	}
	svc := newTestRecordService(adminProfiles("guardian"), records, &mockChildRepository{})

	err := svc.DeleteTouchRecord(context.Background(), "guardian", 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), deletedID)
}

func TestRecordService_GetBiometricRecordsForChild_AnyCaller(t *testing.T) {
	records := &mockRecordRepository{
		listBiometricByChildFn: func(_ context.Context, childID string) ([]models.BiometricRecord, error) {
			return []models.BiometricRecord{{ID: 1, ChildID: childID}}, nil
		},
	}
	svc := newTestRecordService(&mockProfileRepository{}, records, &mockChildRepository{})

	result, err := svc.GetBiometricRecordsForChild(context.Background(), "anyone", "c-1")

	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestRecordService_GetUnifiedRecordList_MergedTimeDescending(t *testing.T) {
	records := &mockRecordRepository{
		listAllBiometricFn: func(_ context.Context) ([]models.BiometricRecord, error) {
			return []models.BiometricRecord{
				{ID: 1, ChildID: "c-1", Timestamp: 100},
				{ID: 2, ChildID: "c-1", Timestamp: 300},
			}, nil
		},
		listAllTouchFn: func(_ context.Context) ([]models.TouchRecord, error) {
			return []models.TouchRecord{
				{ID: 1, ChildID: "c-2", RecordTimestamp: 200},
			}, nil
		},
	}
	svc := newTestRecordService(&mockProfileRepository{}, records, &mockChildRepository{})

	result, err := svc.GetUnifiedRecordList(context.Background(), "anyone")

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, []models.RecordListEntry{
		{ID: 2, RecordType: models.RecordTypeBiometric, ChildID: "c-1", Timestamp: 300},
		{ID: 1, RecordType: models.RecordTypeTouch, ChildID: "c-2", Timestamp: 200},
		{ID: 1, RecordType: models.RecordTypeBiometric, ChildID: "c-1", Timestamp: 100},
	}, result)
}

func TestRecordService_GetUnifiedRecordList_EqualTimestampsDeterministic(t *testing.T) {
	records := &mockRecordRepository{
		listAllBiometricFn: func(_ context.Context) ([]models.BiometricRecord, error) {
			return []models.BiometricRecord{
				{ID: 4, ChildID: "c-1", Timestamp: 100},
				{ID: 2, ChildID: "c-1", Timestamp: 100},
			}, nil
		},
		listAllTouchFn: func(_ context.Context) ([]models.TouchRecord, error) {
			return []models.TouchRecord{
				{ID: 3, ChildID: "c-1", RecordTimestamp: 100},
			}, nil
		},
	}
	svc := newTestRecordService(&mockProfileRepository{}, records, &mockChildRepository{})

	result, err := svc.GetUnifiedRecordList(context.Background(), "anyone")

	require.NoError(t, err)
	require.Len(t, result, 3)
	// equal timestamps sort by kind-local id ascending
	assert.Equal(t, int64(2), result[0].ID)
	assert.Equal(t, int64(3), result[1].ID)
	assert.Equal(t, int64(4), result[2].ID)
}

func TestRecordService_GetUnifiedRecordList_EmptyStores(t *testing.T) {
	svc := newTestRecordService(&mockProfileRepository{}, &mockRecordRepository{}, &mockChildRepository{})

	result, err := svc.GetUnifiedRecordList(context.Background(), "anyone")

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}
