package orderline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiffinbox/marketplace/internal/service/models/orderline"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	line := orderline.Line{
		FoodItemID:   42,
		Quantity:     3,
		Status:       orderline.StatusPlaced,
		DeliveryType: "delivery",
	}

	raw, err := line.Encode()
	require.NoError(t, err)
	assert.Equal(t, "42,3,placed,delivery", raw)

	decoded, err := orderline.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, line, decoded)
}

func TestDecodeToleratesWhitespace(t *testing.T) {
	decoded, err := orderline.Decode(" 7 , 2 ,delivered, pickup")
	require.NoError(t, err)

	assert.Equal(t, orderline.Line{
		FoodItemID:   7,
		Quantity:     2,
		Status:       orderline.StatusDelivered,
		DeliveryType: "pickup",
	}, decoded)
}

func TestDecodeLegacyThreeFieldRecord(t *testing.T) {
	decoded, err := orderline.Decode("5,1,pending")
	require.NoError(t, err)

	assert.Equal(t, int64(5), decoded.FoodItemID)
	assert.Equal(t, 1, decoded.Quantity)
	assert.Equal(t, orderline.StatusPending, decoded.Status)
	assert.Empty(t, decoded.DeliveryType)
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "too few fields", raw: "5,1"},
		{name: "non numeric id", raw: "abc,1,placed,delivery"},
		{name: "non numeric quantity", raw: "5,x,placed,delivery"},
		{name: "unknown status", raw: "5,1,shipped,delivery"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orderline.Decode(tc.raw)
			assert.Error(t, err)
		})
	}
}

func TestParseStatusNormalizes(t *testing.T) {
	status, err := orderline.ParseStatus(" Delivered ")
	require.NoError(t, err)
	assert.Equal(t, orderline.StatusDelivered, status)

	_, err = orderline.ParseStatus("shipped")
	assert.ErrorIs(t, err, orderline.ErrInvalidStatus)
}

func TestEncodeRejectsInvalidLine(t *testing.T) {
	_, err := orderline.Line{FoodItemID: -1, Quantity: 1, Status: orderline.StatusPlaced}.Encode()
	assert.Error(t, err)

	_, err = orderline.Line{FoodItemID: 1, Quantity: 1, Status: "shipped"}.Encode()
	assert.Error(t, err)

	_, err = orderline.Line{FoodItemID: 1, Quantity: 1, Status: orderline.StatusPlaced, DeliveryType: "a,b"}.Encode()
	assert.Error(t, err)
}
