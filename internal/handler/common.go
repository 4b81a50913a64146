package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/lost-and-found/internal/model" // model holds role names
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// The JWT middleware stores numeric claims as float64, so several source
// types have to be accepted.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the authenticated caller carries the admin role.
func isAdmin(c echo.Context) bool {
    role, _ := c.Get("role").(string)
    return role == model.RoleAdmin
}
