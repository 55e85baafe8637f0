package message

var DefaultMessageCodecs = []Codec{
	&startupCodec{},
	&optionsCodec{},
	&queryCodec{},
	&prepareCodec{},
	&executeCodec{},
	&registerCodec{},
	&errorCodec{},
	&readyCodec{},
	&supportedCodec{},
	&resultCodec{},
	&eventCodec{},
}
