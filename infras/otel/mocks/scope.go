package mocks

import "hotelres/infras/otel"

// scopeImpl drops everything it is given.
type scopeImpl struct{}

func (scopeImpl) AddEvent(string)              {}
func (scopeImpl) End()                         {}
func (scopeImpl) SetAttribute(string, any)     {}
func (scopeImpl) SetAttributes(map[string]any) {}
func (scopeImpl) TraceError(error)             {}
func (scopeImpl) TraceIfError(error)           {}

func NewScope() otel.Scope {
	return scopeImpl{}
}
