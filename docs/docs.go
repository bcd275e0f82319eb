// Package docs contiene la definición OpenAPI de la API, registrada en swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger_template.json
var docTemplate string

// SwaggerInfo datos exportados de la definición; Host se completa al iniciar el servidor.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "BizFlow API",
	Description:      "Libro de la tienda: inventario, ventas con saldo de clientes, cobros, gastos y resumen financiero.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
