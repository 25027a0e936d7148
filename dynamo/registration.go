package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
	"github.com/Rhymond/go-money"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

var _ registration.Repository = &DB{}

type registrationDynamo struct {
	PK string
	SK string

	ID             string
	Name           string
	Email          string
	Phone          string
	Event          string
	PaymentStatus  registration.PaymentStatus
	AmountPaid     int64
	AmountCurrency string
	PayerName      *string `dynamodbav:",omitempty"`
	TransactionID  *string `dynamodbav:",omitempty"`
	RegisteredAt   time.Time
	UpdatedAt      time.Time
}

const (
	registrationEntityName = "REGISTRATION"
)

func registrationPK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationSK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", registrationEntityName, id)
}

func registrationKey(id uuid.UUID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: registrationPK(id)},
		"SK": &types.AttributeValueMemberS{Value: registrationSK(id)},
	}
}

func registrationToDynamo(reg registration.Registration) registrationDynamo {
	amount := reg.AmountPaid
	if amount == nil {
		amount = money.New(0, registration.Currency)
	}

	return registrationDynamo{
		PK:             registrationPK(reg.ID),
		SK:             registrationSK(reg.ID),
		ID:             reg.ID.String(),
		Name:           reg.Name,
		Email:          reg.Email,
		Phone:          reg.Phone,
		Event:          reg.Event,
		PaymentStatus:  reg.PaymentStatus,
		AmountPaid:     amount.Amount(),
		AmountCurrency: amount.Currency().Code,
		PayerName:      reg.PayerName,
		TransactionID:  reg.TransactionID,
		RegisteredAt:   reg.RegisteredAt,
		UpdatedAt:      reg.UpdatedAt,
	}
}

func dynamoToRegistration(dynReg registrationDynamo) registration.Registration {
	currency := dynReg.AmountCurrency
	if currency == "" {
		currency = registration.Currency
	}

	return registration.Registration{
		ID:            uuid.MustParse(dynReg.ID),
		Name:          dynReg.Name,
		Email:         dynReg.Email,
		Phone:         dynReg.Phone,
		Event:         dynReg.Event,
		PaymentStatus: dynReg.PaymentStatus,
		AmountPaid:    money.New(dynReg.AmountPaid, currency),
		PayerName:     dynReg.PayerName,
		TransactionID: dynReg.TransactionID,
		RegisteredAt:  dynReg.RegisteredAt,
		UpdatedAt:     dynReg.UpdatedAt,
	}
}

func (d *DB) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	dynamoReg := registrationToDynamo(reg)

	regItem, err := attributevalue.MarshalMap(dynamoReg)
	if err != nil {
		return registration.NewFailedToTranslateToDBModelError("Failed to translate registration to dynamo model", err)
	}
	regExpr := exprMustBuild(expression.NewBuilder().
		WithCondition(newEntityConditional()))

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      regItem,
		ConditionExpression:       regExpr.Condition(),
		ExpressionAttributeNames:  regExpr.Names(),
		ExpressionAttributeValues: regExpr.Values(),
	})
	if err != nil {
		var conditionFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailedErr) {
			return registration.NewRegistrationAlreadyExistsError(fmt.Sprintf("Registration with ID %q already exists", reg.ID), err)
		} else if isTimeout(err) {
			return registration.NewTimeoutError("CreateRegistration timed out")
		}
		return registration.NewFailedToWriteError("Failed PutItem call", err)
	}

	return nil
}

func (d *DB) GetRegistration(ctx context.Context, id uuid.UUID) (registration.Registration, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       registrationKey(id),
	})
	if err != nil {
		if isTimeout(err) {
			return registration.Registration{}, registration.NewTimeoutError("GetRegistration timed out")
		}
		return registration.Registration{}, registration.NewFailedToFetchError(fmt.Sprintf("Failed to fetch registration with id %q", id), err)
	}

	if len(resp.Item) == 0 {
		return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), nil)
	}

	var dynReg registrationDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &dynReg)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToTranslateToDBModelError("Failed to unmarshal registration from dynamo", err)
	}

	return dynamoToRegistration(dynReg), nil
}

func (d *DB) MarkRegistrationPaid(ctx context.Context, id uuid.UUID, payment registration.Payment) (registration.Registration, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	amount := payment.AmountPaid
	if amount == nil {
		amount = money.New(0, registration.Currency)
	}

	update := expression.Set(expression.Name("PaymentStatus"), expression.Value(registration.PAYMENT_STATUS_COMPLETED)).
		Set(expression.Name("AmountPaid"), expression.Value(amount.Amount())).
		Set(expression.Name("AmountCurrency"), expression.Value(amount.Currency().Code)).
		Set(expression.Name("UpdatedAt"), expression.Value(payment.PaidAt))
	if payment.PayerName != nil {
		update = update.Set(expression.Name("PayerName"), expression.Value(*payment.PayerName))
	}
	if payment.TransactionID != nil {
		update = update.Set(expression.Name("TransactionID"), expression.Value(*payment.TransactionID))
	}

	// Never let the update create a half-filled registration
	expr := exprMustBuild(expression.NewBuilder().
		WithUpdate(update).
		WithCondition(existingEntityConditional()))

	resp, err := d.dynamoClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       registrationKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailedErr) {
			return registration.Registration{}, registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with id %q not found", id), err)
		} else if isTimeout(err) {
			return registration.Registration{}, registration.NewTimeoutError("MarkRegistrationPaid timed out")
		}
		return registration.Registration{}, registration.NewFailedToWriteError("Failed UpdateItem call", err)
	}

	var dynReg registrationDynamo
	err = attributevalue.UnmarshalMap(resp.Attributes, &dynReg)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToTranslateToDBModelError("Failed to unmarshal updated registration from dynamo", err)
	}

	return dynamoToRegistration(dynReg), nil
}
