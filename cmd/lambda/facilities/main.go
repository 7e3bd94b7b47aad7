package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"storage-rental-api/pkg/lambda"
	"storage-rental-api/pkg/server"
)

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := server.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	resp := container.FacilityRouter.Dispatch(ctx, lambda.FromAPIGatewayEvent(&event))
	return lambda.ToAPIGatewayResponse(resp), nil
}

func main() {
	awslambda.Start(handler)
}
