// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	AssemblyInProgress           = ProcessError("block assembly already in progress")
	BatchAlreadyCommitted        = ExistsError("batch already committed")
	BatchAlreadyPending          = ExistsError("batch already pending")
	BatcherKeyMismatch           = InvalidError("transaction batcher key does not match batch signer")
	BlockNotFound                = NotFoundError("block not found")
	BlockNumberMismatch          = InvalidError("block number mismatch")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ConfigurationNotFound        = NotFoundError("configuration not found")
	DeclaredAccessViolation      = ProcessError("declared access violation")
	DuplicateBatchInBlock        = InvalidError("duplicate batch in block")
	DuplicateNamespaceRule       = InvalidError("duplicate namespace rule")
	EmptyBatch                   = InvalidError("batch contains no transactions")
	EmptyBatchList               = InvalidError("batch list contains no batches")
	EmptySignerSet               = InvalidError("allow signers rule has no signers")
	ForeignNamespace             = PermissionError("declaration outside the family namespace")
	GameAlreadyExists            = ExistsError("game already exists")
	GameNotFound                 = NotFoundError("game not found")
	GameOver                     = InvalidError("game has ended")
	IntkeyNameExists             = ExistsError("intkey name already exists")
	IntkeyNameNotFound           = NotFoundError("intkey name not found")
	InvalidAddress               = InvalidError("invalid address")
	InvalidBlockInfo             = InvalidError("invalid block info")
	InvalidChainHead             = InvalidError("invalid chain head")
	InvalidCount                 = InvalidError("invalid count")
	InvalidGameAction            = InvalidError("invalid game action")
	InvalidGameName              = InvalidError("invalid game name")
	InvalidGameSpace             = InvalidError("invalid game space")
	InvalidIPAddress             = InvalidError("invalid IP address")
	InvalidIntkeyName            = InvalidError("invalid intkey name")
	InvalidIntkeyValue           = InvalidError("invalid intkey value")
	InvalidIntkeyVerb            = InvalidError("invalid intkey verb")
	InvalidLoggerChannel         = InvalidError("invalid logger channel")
	InvalidNamespace             = InvalidError("invalid namespace")
	InvalidPayload               = InvalidError("invalid payload")
	InvalidPolicyMode            = InvalidError("invalid policy mode")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrivateKey            = InvalidError("invalid private key")
	InvalidPrivateKeyFile        = InvalidError("invalid private key file")
	InvalidPublicKey             = InvalidError("invalid public key")
	InvalidPublicKeyFile         = InvalidError("invalid public key file")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	InvalidTimestamp             = InvalidError("invalid timestamp")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MetadataInjectionFailure     = ProcessError("block metadata injection failure")
	MissingParameters            = InvalidError("missing parameters")
	NamespaceDenied              = PermissionError("namespace denied")
	NoValidBatches               = NotFoundError("no valid batches")
	NotInitialised               = NotFoundError("not initialised")
	PayloadHashMismatch          = InvalidError("payload hash mismatch")
	QueueFull                    = ProcessError("pending queue is full")
	RateLimiting                 = InvalidError("rate limiting")
	ReservedFamily               = PermissionError("transaction family reserved for the validator")
	SignatureInvalid             = InvalidError("signature invalid")
	SignerNotAuthorized          = PermissionError("signer not authorized")
	SpaceOccupied                = InvalidError("space already occupied")
	StateNotFound                = NotFoundError("state not found")
	TransactionIdMismatch        = InvalidError("transaction ids do not match batch header")
	UnknownFamily                = NotFoundError("unknown transaction family")
	WrongPlayer                  = InvalidError("wrong player")
)

// the error interface methods
func (e GenericError) Error() string    { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
