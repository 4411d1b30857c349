package usecase

import "time"

// SetClock fija el reloj del caso de uso de pedidos en tests.
func SetClock(uc *OrderUseCase, now func() time.Time) { uc.now = now }
