// Package docs holds the OpenAPI document served at /swagger/*.
// docs_test.go checks it against the registered routes.
package docs

//go:generate swag init --dir .. --generalInfo cmd/site/main.go --output .

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Reports whether the service runs and whether the hosted backend is configured.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/functions/send-application-email": {
            "post": {
                "description": "Stores a candidate application for a project role and queues the owner notification.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Submit an application",
                "parameters": [{"description": "Application", "name": "application", "in": "body", "required": true, "schema": {"$ref": "#/definitions/intake.Submission"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SubmissionResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/handlers.SubmissionFailure"}},
                    "500": {"description": "Could not store the application", "schema": {"$ref": "#/definitions/handlers.SubmissionFailure"}}
                }
            }
        },
        "/admin/applications": {
            "get": {
                "description": "Lists every application, newest first. Administrators only.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List applications",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "302": {"description": "Redirect to /login for browsers without a session"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Fetch failed; data is empty", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/applications": {
            "post": {
                "description": "Stores a candidate application for a project role and queues the owner notification.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["applications"],
                "summary": "Submit an application",
                "parameters": [{"description": "Application", "name": "application", "in": "body", "required": true, "schema": {"$ref": "#/definitions/intake.Submission"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SubmissionResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/handlers.SubmissionFailure"}},
                    "500": {"description": "Could not store the application", "schema": {"$ref": "#/definitions/handlers.SubmissionFailure"}}
                }
            }
        },
        "/api/v1/projects": {
            "get": {
                "description": "Lists every showcased project with its team slots.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectListSuccessResponse"}}}
            },
            "post": {
                "description": "Adds a project to the catalog. Administrators only.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a new project",
                "parameters": [{"description": "Project to create", "name": "project", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.ProjectInput"}}],
                "responses": {
                    "201": {"description": "Project created successfully", "schema": {"$ref": "#/definitions/handlers.ProjectSuccessResponse"}},
                    "400": {"description": "Bad request if input is invalid (e.g., missing name)", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Slug already used", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/projects/{slug}": {
            "get": {
                "description": "Returns the project page data for a slug.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [{"type": "string", "description": "Project slug", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectSuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/projects/{id}": {
            "patch": {
                "description": "Changes the provided fields of a project. Administrators only.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update a project",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "project", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.ProjectPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectSuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Removes a project from the catalog. Administrators only.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete a project",
                "parameters": [{"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "status is success", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/signup": {
            "post": {
                "description": "Registers an account and its profile. New accounts get the user role.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [{"description": "Account", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.SignUpInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "409": {"description": "Account or username already exists", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}},
                    "422": {"description": "Password too weak", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/signin": {
            "post": {
                "description": "Checks credentials, sets the session cookie and returns the session.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"description": "Credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SignInRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "incorrect credentials", "schema": {"$ref": "#/definitions/handlers.AuthErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/signout": {
            "post": {
                "description": "Revokes the session and clears the session cookie.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/api/v1/auth/session": {
            "get": {
                "description": "Returns the signed-in user and role, or authenticated=false.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/api/v1/admin/applications": {
            "get": {
                "description": "Lists every application, newest first. Administrators only.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List applications",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Fetch failed; data is empty", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/admin/applications/{id}": {
            "get": {
                "description": "Returns one application with a pre-filled reply link. Administrators only.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get an application",
                "parameters": [{"type": "string", "description": "Application ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/profile": {
            "get": {
                "description": "Returns the global and site profile of the signed-in person, creating them on first visit.",
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Get own profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Changes username, photo URL, description or site data of the signed-in person.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Update own profile",
                "parameters": [{"description": "Fields to change", "name": "profile", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/profile/photo": {
            "post": {
                "description": "Stores an image (max 5MB) and makes it the profile photo.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Upload profile photo",
                "parameters": [{"type": "file", "description": "Image file", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.SignUpInput": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "catalog.ProjectInput": {
            "type": "object",
            "required": ["description", "name"],
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "full_description": {"type": "string"},
                "website_url": {"type": "string"},
                "funding_url": {"type": "string"},
                "telegram_url": {"type": "string"},
                "image": {"type": "string"},
                "roles": {"type": "array", "maxItems": 3, "items": {"$ref": "#/definitions/models.RoleSlot"}}
            }
        },
        "catalog.ProjectPatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "full_description": {"type": "string"},
                "website_url": {"type": "string"},
                "funding_url": {"type": "string"},
                "telegram_url": {"type": "string"},
                "image": {"type": "string"},
                "roles": {"type": "array", "items": {"$ref": "#/definitions/models.RoleSlot"}}
            }
        },
        "handlers.AuthErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "detail": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.ProjectListSuccessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Project"}}
            }
        },
        "handlers.ProjectSuccessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/models.Project"}
            }
        },
        "handlers.SignInRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.SubmissionDebug": {
            "type": "object",
            "properties": {
                "stored_in_database": {"type": "boolean"},
                "email_prepared": {"type": "boolean"},
                "email_queued": {"type": "boolean"},
                "note": {"type": "string"}
            }
        },
        "handlers.SubmissionFailure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "handlers.SubmissionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "debug": {"$ref": "#/definitions/handlers.SubmissionDebug"}
            }
        },
        "handlers.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "profile_photo_url": {"type": "string"},
                "description": {"type": "string"},
                "site_specific_data": {"type": "object"}
            }
        },
        "intake.Submission": {
            "type": "object",
            "required": ["email", "motivation", "name", "position", "project_name", "telegram"],
            "properties": {
                "project_name": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "position": {"type": "string", "enum": ["COO", "CM"]},
                "telegram": {"type": "string"},
                "tiktok": {"type": "string"},
                "motivation": {"type": "string"},
                "creativity": {"type": "string"},
                "universe_model": {"type": "string"}
            }
        },
        "models.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "slug": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "full_description": {"type": "string"},
                "website_url": {"type": "string"},
                "funding_url": {"type": "string"},
                "telegram_url": {"type": "string"},
                "image": {"type": "string"},
                "roles": {"type": "array", "items": {"$ref": "#/definitions/models.RoleSlot"}}
            }
        },
        "models.RoleSlot": {
            "type": "object",
            "required": ["position"],
            "properties": {
                "position": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "social": {"type": "string"},
                "percentage": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Romainflg Site API",
	Description:      "Project catalog, application intake, admin review and account endpoints of the romainflg site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
