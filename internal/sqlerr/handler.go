// Package sqlerr handles database driver errors.
//
// It parses the SQLSTATE codes pgx reports and converts them into the
// application's errs taxonomy, so a unique-index violation surfaces as the
// same Conflict error a service-level pre-check produces and driver shapes
// never leak to clients.
package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/uom-service/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateErrorCode creates stable application error codes from DB errors.
//
// Output format is <DOMAIN>_<ACTION>, e.g. uoms + UniqueViolation =>
// UOM_ALREADY_EXISTS. DOMAIN comes from the table name, uppercased and
// crudely singularized.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing message for a
// normalized database error. Logs keep the raw driver error; this string
// is what ends up in the response envelope.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case UniqueViolation:
		// "identifier" is replaced later if the constraint name reveals
		// the actual column.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column metadata.
// Columns ending in "_uom"/"_id" win over the table name since they
// identify the referenced entity on foreign-key failures.
func getEntityName(tableName, columnName string) string {
	lower := strings.ToLower(columnName)
	switch {
	case strings.HasSuffix(lower, "_uom"), strings.HasPrefix(lower, "from_"), strings.HasPrefix(lower, "to_"):
		return "UOM"
	case strings.HasSuffix(lower, "_id"):
		return humanizeText(strings.TrimSuffix(lower, "_id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		if entity == "uom" {
			return "UOM"
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case identifiers into Title Case,
// e.g. "short_code" -> "Short Code".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueConstraintColumn matches the "<table>_<column>_(key|ukey|idx)"
// naming convention used by the migrations.
var uniqueConstraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey|idx)$`)

// restrictedDeleteTable pulls the table whose row is being deleted out of
// the driver message, e.g.
// `update or delete on table "uoms" violates foreign key constraint ...`.
var restrictedDeleteTable = regexp.MustCompile(`^update or delete on table "([^"]+)"`)

// isRestrictedDelete reports whether a foreign-key violation came from
// deleting a referenced row rather than inserting a dangling reference.
// Postgres reports the referencing table as TableName in both directions,
// so the distinction lives in the message and detail text.
func isRestrictedDelete(sqlErr *Error) bool {
	return strings.Contains(sqlErr.Detail, "is still referenced from") ||
		strings.HasPrefix(sqlErr.Message, "update or delete on table")
}

// fkReferencedEntity names the entity a dangling reference pointed at,
// derived from the constraint column: "uom_conversions_from_uom_fkey"
// on table "uom_conversions" yields column "from_uom", hence "UOM".
func fkReferencedEntity(sqlErr *Error) string {
	column := strings.TrimSuffix(sqlErr.ConstraintName, "_fkey")
	column = strings.TrimPrefix(column, sqlErr.TableName+"_")
	return getEntityName("", column)
}

// extractColumnForUniqueViolation infers the column name from a unique
// constraint name. Supports "unique_<table>_<column>" and
// "<table>_<column>_key" conventions.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueConstraintColumn.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application error.
//
// Output:
//   - already *errs.HTTPError: returned unchanged
//   - pgconn.PgError unique violation: errs Conflict (the concurrency
//     backstop for check-then-insert races)
//   - pgconn.PgError FK violation on insert: errs NotFound (dangling
//     reference); on a RESTRICT delete: errs Conflict (row still in use)
//   - pgconn.PgError not-null/check violation: errs BadRequest
//   - pgx.ErrNoRows / sql.ErrNoRows: errs NotFound
//   - anything else: errs InternalServerError
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, &errorCode)

		case ForeignKeyViolation:
			// Postgres reports the referencing table in both directions, so
			// the delete/insert distinction comes from the message text.
			if isRestrictedDelete(sqlErr) {
				table := ""
				if m := restrictedDeleteTable.FindStringSubmatch(sqlErr.Message); len(m) > 1 {
					table = m[1]
				}
				code := strings.TrimSuffix(generateErrorCode(table, Other), "_ERROR") + "_IN_USE"
				return errs.NewConflictError(
					fmt.Sprintf("The %s is referenced by existing records and cannot be deleted", getEntityName(table, "")),
					&code,
				)
			}
			entity := fkReferencedEntity(sqlErr)
			code := strings.ToUpper(strings.ReplaceAll(entity, " ", "_")) + "_NOT_FOUND"
			return errs.NewNotFoundError(fmt.Sprintf("The referenced %s does not exist", entity), &code)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalServerError()
}
