package identity

import "errors"

var (
	// ErrIdentityUnavailable возвращается если роль не удалось определить вовремя или хранилище недоступно
	ErrIdentityUnavailable = errors.New("identity: identity unavailable")

	// ErrUnknownCaller возвращается если id не принадлежит ни мастеру, ни клиенту
	ErrUnknownCaller = errors.New("identity: unknown caller")
)
