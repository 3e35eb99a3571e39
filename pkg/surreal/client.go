package surreal

import (
	"context"
	"fmt"
	"reflect"
	"regexp"

	"github.com/surrealdb/surrealdb.go"
)

type Client struct {
	db *surrealdb.DB
}

// identifierRegex ensures that table names and fields only contain alphanumeric characters and underscores
var identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func validateIdentifier(s string) error {
	if !identifierRegex.MatchString(s) {
		return fmt.Errorf("invalid identifier: %s", s)
	}
	return nil
}

func NewClient(host, user, pass, namespace, database string) (*Client, error) {
	db, err := surrealdb.New(host)
	if err != nil {
		return nil, fmt.Errorf("failed to create surrealdb client: %w", err)
	}

	if _, err = db.SignIn(context.Background(), map[string]interface{}{
		"user": user,
		"pass": pass,
	}); err != nil {
		return nil, fmt.Errorf("failed to signin to surrealdb: %w", err)
	}

	if err = db.Use(context.Background(), namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use surrealdb namespace/database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() {
	c.db.Close(context.Background())
}

// Query runs sql and returns the result of the last statement.
func (c *Client) Query(sql string, vars map[string]interface{}) (interface{}, error) {
	result, err := surrealdb.Query[interface{}](context.Background(), c.db, sql, vars)
	if err != nil {
		return nil, err
	}
	return unwrapResult(result), nil
}

// Create inserts data into table after checking the table name.
func (c *Client) Create(table string, data interface{}) (interface{}, error) {
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}
	result, err := surrealdb.Create[interface{}](context.Background(), c.db, table, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// unwrapResult digs the Result field out of the driver's query response,
// which is a pointer to a slice of per-statement results.
func unwrapResult(result interface{}) interface{} {
	rv := reflect.ValueOf(result)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if resField := rv.FieldByName("Result"); resField.IsValid() {
			return resField.Interface()
		}
	case reflect.Slice:
		if rv.Len() == 0 {
			return nil
		}
		last := rv.Index(rv.Len() - 1)
		if last.Kind() == reflect.Struct {
			if resField := last.FieldByName("Result"); resField.IsValid() {
				return resField.Interface()
			}
		}
	}

	return result
}
