package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sk-barangay-service/internal/app/middleware"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body into obj and answers 400 on failure
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		response.ParamError(ctx, bindMessage(err))
		return false
	}
	return true
}

// bindQuery binds query parameters into obj and answers 400 on failure
func bindQuery(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindQuery(obj); err != nil {
		response.ParamError(ctx, bindMessage(err))
		return false
	}
	return true
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return code.GetMessage(code.ErrBind)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fe.Field()+" is required")
		} else {
			msgs = append(msgs, "Invalid "+fe.Field())
		}
	}
	return strings.Join(msgs, ", ")
}

// paramID parses a positive numeric path parameter
func paramID(ctx *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(ctx, fmt.Sprintf("Invalid %s ID", label))
		return 0, false
	}
	return uint(id), true
}

func actorID(ctx *gin.Context) uint {
	return middleware.ActorID(ctx)
}

func unknownMethod(ctx *gin.Context) {
	response.FailWithMessage(ctx, code.ErrBind, "Invalid method")
}
