package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Exam API",
        "description": "Examination management service: students, teachers, subjects, scores, users and settings",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login flows"},
        {"name": "Students", "description": "Student roster"},
        {"name": "Teachers", "description": "Teacher roster"},
        {"name": "Subjects", "description": "Subject catalogue"},
        {"name": "Scores", "description": "Score records and exports"},
        {"name": "Users", "description": "Accounts"},
        {"name": "Settings", "description": "Flat settings map"},
        {"name": "Attendance", "description": "Attendance snapshots"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in with username and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/student/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in as a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/teacher/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in as a teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Removed record"}, "404": {"description": "Not found"}}
            }
        },
        "/teachers": {
            "get": {"tags": ["Teachers"], "summary": "List teachers", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Teachers"], "summary": "Create teacher", "responses": {"201": {"description": "Created"}}}
        },
        "/teachers/{id}": {
            "get": {"tags": ["Teachers"], "summary": "Get teacher detail", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Teachers"], "summary": "Update teacher", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Teachers"], "summary": "Delete teacher", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Removed record"}}}
        },
        "/subjects": {
            "get": {"tags": ["Subjects"], "summary": "List subjects", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Subjects"], "summary": "Create subject", "responses": {"201": {"description": "Created"}}}
        },
        "/subjects/{id}": {
            "get": {"tags": ["Subjects"], "summary": "Get subject detail", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Subjects"], "summary": "Update subject", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Subjects"], "summary": "Delete subject", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Removed record"}}}
        },
        "/scores": {
            "get": {
                "tags": ["Scores"],
                "summary": "List scores",
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Scores"],
                "summary": "Record a score (upsert on the student/subject/term/year tuple)",
                "responses": {"201": {"description": "Created or merged"}, "403": {"description": "Role not allowed"}}
            }
        },
        "/scores/{id}": {
            "get": {"tags": ["Scores"], "summary": "Get score detail", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Scores"], "summary": "Update score", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Scores"], "summary": "Delete score (admin only)", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Removed record"}, "403": {"description": "Role not allowed"}}}
        },
        "/scores/student/{studentId}": {
            "get": {
                "tags": ["Scores"],
                "summary": "List one student's scores",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/scores/export": {
            "get": {
                "tags": ["Scores"],
                "summary": "Export scores as a CSV mark sheet",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV payload"}}
            }
        },
        "/scores/report/{studentId}": {
            "get": {
                "tags": ["Scores"],
                "summary": "Render a student's report card PDF",
                "produces": ["application/pdf"],
                "parameters": [{"name": "studentId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "PDF payload"}, "404": {"description": "Student not found"}}
            }
        },
        "/users": {
            "get": {"tags": ["Users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Users"], "summary": "Create user", "responses": {"201": {"description": "Created"}}}
        },
        "/users/{id}": {
            "get": {"tags": ["Users"], "summary": "Get user detail", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Users"], "summary": "Update user", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Users"], "summary": "Delete user", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Removed record"}}}
        },
        "/users/{id}/change-password": {
            "post": {
                "tags": ["Users"],
                "summary": "Change a user's password",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Current password incorrect"}}
            }
        },
        "/users/invite/teacher": {
            "post": {
                "tags": ["Users"],
                "summary": "Issue a teacher invite token (admin only)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Role not allowed"}}
            }
        },
        "/settings/{key}": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get a settings entry",
                "parameters": [{"name": "key", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Stored value or null"}}
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Store a settings entry",
                "parameters": [{"name": "key", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/attendance": {
            "put": {
                "tags": ["Attendance"],
                "summary": "Save attendance for many students",
                "responses": {"200": {"description": "Saved/failed counts"}}
            }
        },
        "/attendance/{studentId}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Get a student's attendance snapshot",
                "parameters": [{"name": "studentId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Save a student's attendance",
                "parameters": [{"name": "studentId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "StudentLoginRequest": {
            "type": "object",
            "required": ["studentId", "secret"],
            "properties": {
                "studentId": {"type": "string"},
                "secret": {"type": "string"}
            }
        },
        "TeacherLoginRequest": {
            "type": "object",
            "required": ["teacherId", "phone"],
            "properties": {
                "teacherId": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "message": {"type": "string"},
                "token": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
