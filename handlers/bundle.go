package handlers

import (
	userRepo "slotbook/database/repository/user"
)

// HandlerBundle groups the handlers and the repositories the route
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Auth         *AuthHandler
	Users        *UserHandler
	Schedule     *ScheduleHandler
	Reservations *ReservationHandler
	Catalog      *CatalogHandler
}
