package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"etiqo/internal/domain"
	"etiqo/internal/orderparse"
	"etiqo/internal/service"
	"etiqo/mocks"
)

func newOrderService(vision *mocks.MockVisionClient, alerts *mocks.MockAlertSender) service.OrderService {
	parser := orderparse.NewParser(vision, 10)
	return service.NewOrderService(parser, alerts, 25)
}

func TestParseOrder_EmptyDocument(t *testing.T) {
	svc := newOrderService(new(mocks.MockVisionClient), new(mocks.MockAlertSender))

	_, err := svc.ParseOrder(context.Background(), service.ParseOrderInput{
		Data:        nil,
		ContentType: "text/csv",
	})

	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestParseOrder_FileTooLarge(t *testing.T) {
	parser := orderparse.NewParser(new(mocks.MockVisionClient), 10)
	svc := service.NewOrderService(parser, new(mocks.MockAlertSender), 1)

	big := make([]byte, 1024*1024+1)
	_, err := svc.ParseOrder(context.Background(), service.ParseOrderInput{
		Data:        big,
		ContentType: "image/jpeg",
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestParseOrder_UnsupportedFileType(t *testing.T) {
	svc := newOrderService(new(mocks.MockVisionClient), new(mocks.MockAlertSender))

	_, err := svc.ParseOrder(context.Background(), service.ParseOrderInput{
		Data:         []byte("<html></html>"),
		ContentType:  "text/html",
		FileNameHint: "pedido.html",
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestParseOrder_CleanParseSendsNoAlert(t *testing.T) {
	alerts := new(mocks.MockAlertSender)
	svc := newOrderService(new(mocks.MockVisionClient), alerts)

	order, err := svc.ParseOrder(context.Background(), service.ParseOrderInput{
		Data:         []byte("Producto,Cantidad\nAlbahaca,2 kg\n"),
		ContentType:  "text/csv",
		FileNameHint: "pedido.csv",
	})

	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Empty(t, order.Notes)
	alerts.AssertNotCalled(t, "SendReviewAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestParseOrder_DegradedParseFiresAlert(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/jpeg").
		Return("", errors.New("backend down"))

	alerts := new(mocks.MockAlertSender)
	alerts.On("SendReviewAlert", mock.Anything, "factura.jpg", mock.Anything).Return(nil)

	svc := newOrderService(vision, alerts)
	order, err := svc.ParseOrder(context.Background(), service.ParseOrderInput{
		Data:         []byte("jpeg-bytes"),
		ContentType:  "image/jpeg",
		FileNameHint: "factura.jpg",
	})

	// Degraded parses are not errors.
	require.NoError(t, err)
	assert.NotEmpty(t, order.Notes)
	alerts.AssertExpectations(t)
}

func TestParseOrder_AlertFailureDoesNotFailParse(t *testing.T) {
	vision := new(mocks.MockVisionClient)
	vision.On("RecognizeText", mock.Anything, mock.Anything, "image/jpeg").
		Return("", errors.New("backend down"))

	alerts := new(mocks.MockAlertSender)
	alerts.On("SendReviewAlert", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp unreachable"))

	svc := newOrderService(vision, alerts)
	order, err := svc.ParseOrder(context.Background(), service.ParseOrderInput{
		Data:        []byte("jpeg-bytes"),
		ContentType: "image/jpeg",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, order.Notes)
}
