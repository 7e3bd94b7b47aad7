package lambda

import (
	"github.com/aws/aws-lambda-go/events"
)

// FromAPIGatewayEvent converts an API Gateway proxy event into the
// generic request envelope. The event's Resource carries the route
// template ("/users/{userid}") that dispatch keys on.
func FromAPIGatewayEvent(event *events.APIGatewayProxyRequest) *Request {
	return &Request{
		Method:        event.HTTPMethod,
		Path:          event.Path,
		RouteTemplate: event.Resource,
		Headers:       event.Headers,
		QueryParams:   event.QueryStringParameters,
		PathParams:    event.PathParameters,
		Body:          []byte(event.Body),
	}
}

// ToAPIGatewayResponse converts a normalized response back into the
// API Gateway proxy shape
func ToAPIGatewayResponse(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}
