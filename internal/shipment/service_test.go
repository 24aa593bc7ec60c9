package shipment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/shiptrack/internal/shipment"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestService_Create(t *testing.T) {
	type args struct {
		params shipment.Params
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *shipment.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: shipment.Params{
					Code:          "S1",
					TotalAmount:   decimal.NewFromInt(100),
					ShippingFee:   decimal.NewFromInt(10),
					PaymentSource: shipment.PaymentSourceCompany,
					Date:          date(2024, 1, 10),
				},
			},
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().
					CreateShipment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *shipment.Shipment) error {
						s.ID = 1
						s.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "DuplicateCode",
			args: args{
				params: shipment.Params{Code: "S1", TotalAmount: decimal.NewFromInt(5), Date: date(2024, 1, 10)},
			},
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().
					CreateShipment(gomock.Any(), gomock.Any()).
					Return(shipment.ErrDuplicateCode)
			},
			wantErr: shipment.ErrDuplicateCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := shipment.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := shipment.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
			assert.Equal(t, tt.args.params.Code, got.Code)
			assert.True(t, tt.args.params.ShippingFee.Equal(got.ShippingFee))
		})
	}
}

func TestService_Create_DefaultsShippingFeeToZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := shipment.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateShipment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *shipment.Shipment) error {
			assert.True(t, s.ShippingFee.IsZero())
			assert.Empty(t, s.PaymentSource)
			return nil
		})

	svc := shipment.NewService(repo)
	_, err := svc.Create(context.Background(), shipment.Params{
		Code:        "S2",
		TotalAmount: decimal.NewFromInt(1),
		Date:        date(2024, 2, 1),
	})
	require.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *shipment.MockRepository)
		wantErr   error
	}

	params := shipment.Params{
		Code:        "S1",
		TotalAmount: decimal.NewFromInt(150),
		ShippingFee: decimal.NewFromInt(10),
		Date:        date(2024, 1, 10),
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().
					UpdateShipment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *shipment.Shipment) error {
						assert.Equal(t, int64(7), s.ID)
						assert.True(t, decimal.NewFromInt(150).Equal(s.TotalAmount))
						return nil
					})
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().UpdateShipment(gomock.Any(), gomock.Any()).Return(shipment.ErrNotFound)
			},
			wantErr: shipment.ErrNotFound,
		},
		{
			name: "DuplicateCode",
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().UpdateShipment(gomock.Any(), gomock.Any()).Return(shipment.ErrDuplicateCode)
			},
			wantErr: shipment.ErrDuplicateCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := shipment.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := shipment.NewService(repo)
			got, err := svc.Update(context.Background(), 7, params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := shipment.NewMockRepository(ctrl)
	repo.EXPECT().DeleteShipment(gomock.Any(), int64(3)).Return(shipment.ErrNotFound)

	svc := shipment.NewService(repo)
	err := svc.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, shipment.ErrNotFound)
}

func TestService_List(t *testing.T) {
	type args struct {
		filter shipment.Filter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *shipment.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{filter: shipment.NoFilter()},
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().
					ListShipments(gomock.Any(), shipment.NoFilter()).
					Return([]*shipment.Shipment{{ID: 2}, {ID: 1}}, nil)
			},
			wantLen: 2,
		},
		{
			name: "CurrentWeek",
			args: args{filter: shipment.CurrentWeek()},
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().
					ListShipments(gomock.Any(), shipment.CurrentWeek()).
					Return([]*shipment.Shipment{{ID: 1}}, nil)
			},
			wantLen: 1,
		},
		{
			name: "Error",
			args: args{filter: shipment.NoFilter()},
			setupMock: func(m *shipment.MockRepository) {
				m.EXPECT().
					ListShipments(gomock.Any(), shipment.NoFilter()).
					Return(nil, errors.New("list error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := shipment.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := shipment.NewService(repo)
			got, err := svc.List(context.Background(), tt.args.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := shipment.NewMockRepository(ctrl)
	itx := shipment.NewMockImportTx(ctrl)
	svc := shipment.NewService(repo)

	params := []shipment.Params{
		{Code: "A1", TotalAmount: decimal.NewFromInt(10), Date: date(2024, 3, 1)},
		{Code: "A2", TotalAmount: decimal.NewFromInt(20), Date: date(2024, 3, 2)},
	}

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindExisting(gomock.Any(), []string{"A1", "A2"}).Return(nil, nil)
	itx.EXPECT().CreateShipments(gomock.Any(), gomock.Len(2)).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := shipment.NewMockRepository(ctrl)
	itx := shipment.NewMockImportTx(ctrl)
	svc := shipment.NewService(repo)

	params := []shipment.Params{
		{Code: "A1", TotalAmount: decimal.NewFromInt(10), Date: date(2024, 3, 1)},
		{Code: "A2", TotalAmount: decimal.NewFromInt(20), Date: date(2024, 3, 2)},
	}

	existing := &shipment.Shipment{ID: 9, Code: "A1", TotalAmount: decimal.NewFromInt(99), Date: date(2024, 2, 1)}

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindExisting(gomock.Any(), []string{"A1", "A2"}).Return([]*shipment.Shipment{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	require.Len(t, result.New, 1)
	assert.Equal(t, "A2", result.New[0].Code)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := shipment.NewMockRepository(ctrl)
	svc := shipment.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
}

func TestService_CreateBatch_DuplicateRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := shipment.NewMockRepository(ctrl)
	itx := shipment.NewMockImportTx(ctrl)
	svc := shipment.NewService(repo)

	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().CreateShipments(gomock.Any(), gomock.Any()).Return(shipment.ErrDuplicateCode)
	itx.EXPECT().Rollback().Return(nil)

	got, err := svc.CreateBatch(context.Background(), []shipment.Params{
		{Code: "A1", TotalAmount: decimal.NewFromInt(10), Date: date(2024, 3, 1)},
	})
	assert.ErrorIs(t, err, shipment.ErrDuplicateCode)
	assert.Nil(t, got)
}
