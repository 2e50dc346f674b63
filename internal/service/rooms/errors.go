package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("service.rooms: room not found")

	// ErrSectionNotFound возвращается, когда секция не найдена
	ErrSectionNotFound = errors.New("service.rooms: section not found")

	// ErrBuildingNotFound возвращается, когда здание не найдено
	ErrBuildingNotFound = errors.New("service.rooms: building not found")

	// ErrPersonNotFound возвращается, когда человек не найден
	ErrPersonNotFound = errors.New("service.rooms: person not found")

	// ErrSelfParent возвращается при попытке назначить человека родителем
	// самому себе
	ErrSelfParent = errors.New("service.rooms: person cannot be their own parent")

	// ErrInvalidPreference возвращается при некорректном значении предпочтения
	ErrInvalidPreference = errors.New("service.rooms: invalid preference")

	// ErrOwnerHasRoom возвращается, когда человек уже владеет другой комнатой:
	// у человека может быть только одна комната
	ErrOwnerHasRoom = errors.New("service.rooms: person already owns a room")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("service.rooms: internal error")
)
