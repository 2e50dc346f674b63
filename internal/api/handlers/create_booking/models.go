package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
	createBooking "github.com/m04kA/HC-RoomService/internal/usecase/create_booking"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID    int64  `json:"roomId"`
	GuestName string `json:"guestName"`
	GuestType string `json:"guestType"` // "stranger" / "known" / "member"
	StartDate string `json:"startDate"` // "2026-09-15"
	EndDate   string `json:"endDate"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	RoomID    int64  `json:"roomId"`
	Title     string `json:"title"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(norm *timeutil.Normalizer, hostID int64) (createBooking.Request, error) {
	startDate, err := norm.ParseDate(r.StartDate)
	if err != nil {
		return createBooking.Request{}, fmt.Errorf("parse start date: %w", err)
	}

	endDate, err := norm.ParseDate(r.EndDate)
	if err != nil {
		return createBooking.Request{}, fmt.Errorf("parse end date: %w", err)
	}

	guestType, err := parseGuestType(r.GuestType)
	if err != nil {
		return createBooking.Request{}, err
	}

	return createBooking.Request{
		RoomID:    r.RoomID,
		HostID:    hostID,
		GuestName: r.GuestName,
		GuestType: guestType,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.IntervalID,
		RoomID:    resp.RoomID,
		Title:     resp.Title,
		StartAt:   resp.StartAt.Format(time.RFC3339),
		EndAt:     resp.EndAt.Format(time.RFC3339),
		StartDate: resp.StartAt.Format(timeutil.DateFormat),
		EndDate:   resp.EndAt.Format(timeutil.DateFormat),
	}
}

func parseGuestType(s string) (domain.GuestType, error) {
	switch s {
	case "stranger":
		return domain.GuestStranger, nil
	case "known":
		return domain.GuestKnown, nil
	case "member":
		return domain.GuestMember, nil
	default:
		return 0, fmt.Errorf("unknown guest type %q", s)
	}
}
