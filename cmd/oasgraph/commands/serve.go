package commands

import (
	"flag"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"github.com/erraggy/oasgraph/translator"
)

// graphqlRequest is the standard GraphQL-over-HTTP POST body.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HandleServe implements the serve command: translate the given documents
// once at startup and serve the schema on a GraphQL HTTP endpoint.
func HandleServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var files FileList
	fs.Var(&files, "f", "OpenAPI document to translate (repeatable)")
	addr := fs.String("addr", ":8080", "Listen address")
	verbose := fs.Bool("verbose", false, "Enable debug diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	docs, err := LoadDocuments(files)
	if err != nil {
		return err
	}

	schema, err := translator.Translate(docs, translator.WithLogger(NewLogger(*verbose)))
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.POST("/graphql", graphqlHandler(schema))

	return router.Run(*addr)
}

// graphqlHandler executes incoming GraphQL requests against the translated
// schema. The schema is immutable, so the handler is safe under concurrency.
func graphqlHandler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graphqlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request.Context(),
		})
		c.JSON(http.StatusOK, result)
	}
}
