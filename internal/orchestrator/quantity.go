package orchestrator

import (
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/intstr"
)

func mustParseQuantity(s string) resource.Quantity {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		panic("orchestrator: invalid resource quantity " + s + ": " + err.Error())
	}
	return q
}

func intOrString(port int32) intstr.IntOrString {
	return intstr.FromInt32(port)
}
