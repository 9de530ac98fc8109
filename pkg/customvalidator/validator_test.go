package customvalidator

import (
	"testing"
	"time"

	"reservation-system/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreatePayload() dto.CreateReservationDTO {
	return dto.CreateReservationDTO{
		Occasion:        "Barangay fiesta",
		PhoneNumber:     "09171234567",
		FullAddress:     "123 Sampaguita St, Barangay San Isidro",
		ReservationDate: time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		TimeSlot:        "morning",
		Items:           []dto.ReservationItemRequestDTO{{ID: 1, Quantity: 2}},
	}
}

func TestCreateReservationPayloadValid(t *testing.T) {
	cv := New()
	assert.NoError(t, cv.Validate(validCreatePayload()))
}

func TestPhilippinePhoneNumbers(t *testing.T) {
	cv := New()

	valid := []string{"09171234567", "+639171234567"}
	for _, number := range valid {
		payload := validCreatePayload()
		payload.PhoneNumber = number
		assert.NoError(t, cv.Validate(payload), number)
	}

	invalid := []string{"0917123456", "091712345678", "639171234567", "phone", ""}
	for _, number := range invalid {
		payload := validCreatePayload()
		payload.PhoneNumber = number
		assert.Error(t, cv.Validate(payload), number)
	}
}

func TestTimeSlotRule(t *testing.T) {
	cv := New()

	for _, slot := range []string{"morning", "afternoon", "fullday"} {
		payload := validCreatePayload()
		payload.TimeSlot = slot
		assert.NoError(t, cv.Validate(payload), slot)
	}

	for _, slot := range []string{"evening", "Morning", "full_day", ""} {
		payload := validCreatePayload()
		payload.TimeSlot = slot
		assert.Error(t, cv.Validate(payload), slot)
	}
}

func TestDateNotPastRule(t *testing.T) {
	cv := New()

	payload := validCreatePayload()
	payload.ReservationDate = time.Now().Format("2006-01-02")
	assert.NoError(t, cv.Validate(payload), "today is allowed")

	payload.ReservationDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	assert.Error(t, cv.Validate(payload), "yesterday is rejected")

	payload.ReservationDate = "2026/09/15"
	assert.Error(t, cv.Validate(payload), "wrong format is rejected")
}

func TestItemsMustBePresentAndPositive(t *testing.T) {
	cv := New()

	payload := validCreatePayload()
	payload.Items = nil
	assert.Error(t, cv.Validate(payload))

	payload = validCreatePayload()
	payload.Items = []dto.ReservationItemRequestDTO{}
	assert.Error(t, cv.Validate(payload))

	payload = validCreatePayload()
	payload.Items = []dto.ReservationItemRequestDTO{{ID: 1, Quantity: 0}}
	assert.Error(t, cv.Validate(payload))

	payload = validCreatePayload()
	payload.Items = []dto.ReservationItemRequestDTO{{ID: 0, Quantity: 2}}
	assert.Error(t, cv.Validate(payload))
}

func TestUpdateStatusPayload(t *testing.T) {
	cv := New()

	for _, status := range []string{"pending", "approved", "rejected", "picked_up", "returned"} {
		require.NoError(t, cv.Validate(dto.UpdateReservationStatusDTO{Status: status}), status)
	}

	assert.Error(t, cv.Validate(dto.UpdateReservationStatusDTO{Status: "cancelled"}))
	assert.Error(t, cv.Validate(dto.UpdateReservationStatusDTO{Status: ""}))
}
