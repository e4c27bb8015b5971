package handler

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request payloads.
var validate = validator.New()

// --- UOM requests -----------------------------------------------------------

type CreateUOMRequest struct {
	UnitName  string `json:"unitName" validate:"required,min=1,max=100"`
	ShortCode string `json:"shortCode" validate:"required,min=1,max=20"`
	Type      string `json:"type" validate:"required,oneof=base derived"`
	Category  string `json:"category" validate:"required,oneof=Weight Volume Quantity Packaging Length Area"`
	Status    string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

func (r *CreateUOMRequest) Validate() error { return validate.Struct(r) }

type ListUOMsRequest struct {
	Search   string `query:"search"`
	Status   string `query:"status" validate:"omitempty,oneof=Active Inactive"`
	Type     string `query:"type" validate:"omitempty,oneof=base derived"`
	Category string `query:"category" validate:"omitempty,oneof=Weight Volume Quantity Packaging Length Area"`
}

func (r *ListUOMsRequest) Validate() error { return validate.Struct(r) }

type GetUOMRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetUOMRequest) Validate() error { return validate.Struct(r) }

type UpdateUOMRequest struct {
	ID        string  `param:"id" validate:"required,uuid"`
	UnitName  *string `json:"unitName" validate:"omitempty,min=1,max=100"`
	ShortCode *string `json:"shortCode" validate:"omitempty,min=1,max=20"`
	Type      *string `json:"type" validate:"omitempty,oneof=base derived"`
	Category  *string `json:"category" validate:"omitempty,oneof=Weight Volume Quantity Packaging Length Area"`
	Status    *string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

func (r *UpdateUOMRequest) Validate() error { return validate.Struct(r) }

type DeleteUOMRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteUOMRequest) Validate() error { return validate.Struct(r) }

// --- Conversion requests ----------------------------------------------------

type CreateConversionRequest struct {
	FromUOM         string  `json:"fromUOM" validate:"required,uuid"`
	ToUOM           string  `json:"toUOM" validate:"required,uuid"`
	ConversionRatio float64 `json:"conversionRatio" validate:"required,gte=0.001"`
	Category        *string `json:"category" validate:"omitempty,oneof=Weight Volume Quantity Packaging Length Area"`
	Status          string  `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

func (r *CreateConversionRequest) Validate() error { return validate.Struct(r) }

type ListConversionsRequest struct {
	Search   string `query:"search"`
	Status   string `query:"status" validate:"omitempty,oneof=Active Inactive"`
	Category string `query:"category" validate:"omitempty,oneof=Weight Volume Quantity Packaging Length Area"`
}

func (r *ListConversionsRequest) Validate() error { return validate.Struct(r) }

type GetConversionRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *GetConversionRequest) Validate() error { return validate.Struct(r) }

type UpdateConversionRequest struct {
	ID              string   `param:"id" validate:"required,uuid"`
	FromUOM         *string  `json:"fromUOM" validate:"omitempty,uuid"`
	ToUOM           *string  `json:"toUOM" validate:"omitempty,uuid"`
	ConversionRatio *float64 `json:"conversionRatio" validate:"omitempty,gte=0.001"`
	Category        *string  `json:"category" validate:"omitempty,oneof=Weight Volume Quantity Packaging Length Area"`
	Status          *string  `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

func (r *UpdateConversionRequest) Validate() error { return validate.Struct(r) }

type DeleteConversionRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *DeleteConversionRequest) Validate() error { return validate.Struct(r) }

// --- Convert request --------------------------------------------------------

// ConvertRequest converts a quantity between two units. Quantity is a
// pointer so an explicit zero passes "required" while a missing field
// does not.
type ConvertRequest struct {
	FromUOM  string   `json:"fromUOM" validate:"required,uuid"`
	ToUOM    string   `json:"toUOM" validate:"required,uuid"`
	Quantity *float64 `json:"quantity" validate:"required,gte=0"`
}

func (r *ConvertRequest) Validate() error { return validate.Struct(r) }
