// Package docs registra la definición OpenAPI que sirve /swagger.
// Se regenera con: swag init -g cmd/api/main.go -o docs
package docs

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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Renovar tokens", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Usuario actual", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/dogs": {
            "get": {"tags": ["dogs"], "summary": "Listar perros", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["dogs"], "summary": "Crear perro", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/dogs/{dogID}": {
            "get": {"tags": ["dogs"], "summary": "Obtener perro", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["dogs"], "summary": "Actualizar perro", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["dogs"], "summary": "Borrar perro", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/dogs/{dogID}/details": {
            "get": {"tags": ["dogs"], "summary": "Perfil extendido", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["dogs"], "summary": "Actualizar perfil extendido", "responses": {"200": {"description": "OK"}}}
        },
        "/dogs/{dogID}/avatar": {"post": {"tags": ["dogs"], "summary": "Subir avatar", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/health/vet-visits": {
            "get": {"tags": ["health"], "summary": "Listar visitas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["health"], "summary": "Crear visita", "responses": {"201": {"description": "Created"}}}
        },
        "/health/vaccinations": {
            "get": {"tags": ["health"], "summary": "Listar vacunas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["health"], "summary": "Crear vacuna", "responses": {"201": {"description": "Created"}}}
        },
        "/health/invoices": {
            "get": {"tags": ["health"], "summary": "Listar facturas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["health"], "summary": "Crear factura", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/health/invoices/{invoiceID}/file": {"post": {"tags": ["health"], "summary": "Adjuntar archivo a factura", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}}}},
        "/care/tasks": {
            "get": {"tags": ["care"], "summary": "Listar tareas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["care"], "summary": "Crear tarea", "responses": {"201": {"description": "Created"}}}
        },
        "/care/tasks/{taskID}/complete": {"post": {"tags": ["care"], "summary": "Completar tarea", "responses": {"200": {"description": "OK"}}}},
        "/care/logs": {"get": {"tags": ["care"], "summary": "Historial de tareas", "responses": {"200": {"description": "OK"}}}},
        "/training/goals": {"get": {"tags": ["training"], "summary": "Listar objetivos", "responses": {"200": {"description": "OK"}}}, "post": {"tags": ["training"], "summary": "Crear objetivo", "responses": {"201": {"description": "Created"}}}},
        "/training/issues": {"get": {"tags": ["training"], "summary": "Listar problemas de conducta", "responses": {"200": {"description": "OK"}}}, "post": {"tags": ["training"], "summary": "Crear problema de conducta", "responses": {"201": {"description": "Created"}}}},
        "/training/logs": {"get": {"tags": ["training"], "summary": "Listar sesiones", "responses": {"200": {"description": "OK"}}}, "post": {"tags": ["training"], "summary": "Crear sesión", "responses": {"201": {"description": "Created"}}}},
        "/walks": {"get": {"tags": ["walks"], "summary": "Listar paseos", "responses": {"200": {"description": "OK"}}}, "post": {"tags": ["walks"], "summary": "Crear paseo", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/walks/{walkID}/gpx": {"post": {"tags": ["walks"], "summary": "Subir GPX", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}}}},
        "/equipment": {"get": {"tags": ["equipment"], "summary": "Listar equipamiento", "responses": {"200": {"description": "OK"}}}, "post": {"tags": ["equipment"], "summary": "Crear item", "responses": {"201": {"description": "Created"}}}},
        "/tags": {"get": {"tags": ["tags"], "summary": "Listar tags", "responses": {"200": {"description": "OK"}}}, "post": {"tags": ["tags"], "summary": "Crear tag", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/tags/assignments": {"get": {"tags": ["tags"], "summary": "Tags de una entidad", "responses": {"200": {"description": "OK"}}}, "post": {"tags": ["tags"], "summary": "Asignar tags", "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}}}},
        "/activity": {"get": {"tags": ["activity"], "summary": "Feed de actividad", "responses": {"200": {"description": "OK"}}}},
        "/reminders/upcoming": {"get": {"tags": ["reminders"], "summary": "Próximos recordatorios", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}}
    }
}`

// SwaggerInfo se completa en el router con la versión real.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Dog Care API",
	Description:      "Registro de perros por usuario: salud, cuidados, entrenamiento, paseos y equipamiento.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
