// Package docs registra la definición swagger del servicio.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
    "paths": {
        "/api/owners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Listar owners",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Prefijo de apellido",
                        "name": "lastName",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Crear owner",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/owners/{ownerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Obtener owner por id",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["owners"],
                "summary": "Actualizar owner",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["owners"],
                "summary": "Borrar owner (cascadea sus pets y visits)",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/owners/{ownerID}/pets": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Agregar pet a un owner",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/owners/{ownerID}/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Obtener un pet del owner",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["owners"],
                "summary": "Actualizar un pet del owner",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/owners/{ownerID}/pets/{petID}/visits": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["owners"],
                "summary": "Registrar visita para un pet del owner",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar todos los pets",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear pet referenciando a su owner por ownerId",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Obtener pet por id",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualizar pet",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Borrar pet (cascadea sus visits)",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/pettypes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pettypes"],
                "summary": "Listar pet types ordenados por nombre",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pettypes"],
                "summary": "Crear pet type",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/pettypes/{petTypeID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pettypes"],
                "summary": "Obtener pet type por id",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["pettypes"],
                "summary": "Actualizar pet type",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["pettypes"],
                "summary": "Borrar pet type (cascadea pets del tipo y sus visits)",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/visits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Listar todas las visitas",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Registrar visita referenciando al pet por petId",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/visits/{visitID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["visits"],
                "summary": "Obtener visita por id",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["visits"],
                "summary": "Actualizar visita",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["visits"],
                "summary": "Borrar visita",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/vets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Listar vets con sus especialidades",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Crear vet",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/vets/{vetID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vets"],
                "summary": "Obtener vet por id",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["vets"],
                "summary": "Actualizar vet (reemplaza el set de especialidades)",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["vets"],
                "summary": "Borrar vet",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/specialties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["specialties"],
                "summary": "Listar especialidades",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["specialties"],
                "summary": "Crear especialidad",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/specialties/{specialtyID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["specialties"],
                "summary": "Obtener especialidad por id",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["specialties"],
                "summary": "Actualizar especialidad",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["specialties"],
                "summary": "Borrar especialidad",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Crear o actualizar cuenta de usuario",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
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
	Title:            "PetClinic REST",
	Description:      "Backend REST de la clínica veterinaria: owners, pets, visits, vets y cuentas de usuario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
